package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance one learner's record for one civil day (table attendances)
// (user_id, attendance_date) is unique at the storage level.
type Attendance struct {
	AttendanceID    string  `gorm:"type:uuid;primaryKey"                                                   json:"attendance_id"`
	UserID          string  `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_user_date,priority:1"     json:"user_id"`
	ModuleNumber    int     `gorm:"not null"                                                               json:"module_number"`
	MilestoneNumber int     `gorm:"not null"                                                               json:"milestone_number"`
	StudyHours      float64 `gorm:"type:numeric(4,2);not null"                                             json:"study_hours"`
	LearningSummary string  `gorm:"type:text;not null"                                                     json:"learning_summary"`
	AttendanceDate  string  `gorm:"type:varchar(10);not null;uniqueIndex:uq_attendances_user_date,priority:2" json:"attendance_date"` // YYYY-MM-DD, civil
	AttendanceTime  string  `gorm:"type:varchar(8);not null"                                               json:"attendance_time"` // HH:mm:ss, civil
	BaseModel

	User *User `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}

// TableName table name
func (Attendance) TableName() string { return "attendances" }

// BeforeCreate assigns the primary key when the caller left it empty.
func (a *Attendance) BeforeCreate(_ *gorm.DB) error {
	if a.AttendanceID == "" {
		a.AttendanceID = uuid.NewString()
	}
	return nil
}
