package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User learner (table users)
type User struct {
	UserID                 string     `gorm:"type:uuid;primaryKey"                           json:"user_id"`
	Name                   string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Email                  string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	WhatsappNumber         *string    `gorm:"type:varchar(11)"                               json:"whatsapp_number,omitempty"`
	CurrentModuleNumber    *int       `json:"current_module_number,omitempty"`
	CurrentMilestoneNumber *int       `json:"current_milestone_number,omitempty"`
	LastAttendanceAt       *time.Time `json:"last_attendance_at,omitempty"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }

// BeforeCreate assigns the primary key when the caller left it empty.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

// BeforeSave keeps stored emails normalized.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// HasWhatsapp reports whether a contact number is registered.
func (u *User) HasWhatsapp() bool {
	return u.WhatsappNumber != nil && *u.WhatsappNumber != ""
}

// NormalizeEmail is applied before every store and every lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
