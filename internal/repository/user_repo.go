package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/muhammad-yeasin/wave2-attendance/internal/model"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/database"
)

// UserRepository learner directory access
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateWhatsappNumber(ctx context.Context, id, number string) (*model.User, error)
	RecordProgress(ctx context.Context, id string, moduleNumber, milestoneNumber int, at time.Time) error
	// Upsert inserts the user or refreshes the name of the existing user with the same email.
	Upsert(ctx context.Context, user *model.User) (bool, error)
}

type userRepo struct {
	conn database.Conn
}

// NewUserRepo creates a UserRepository.
func NewUserRepo(conn database.Conn) UserRepository {
	return &userRepo{conn: conn}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return err
	}
	return translateWriteError(db.Create(user).Error)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := db.Where("user_id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := db.Where("email = ?", model.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) UpdateWhatsappNumber(ctx context.Context, id, number string) (*model.User, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}

	var user model.User
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("user_id = ?", id).
			Updates(map[string]interface{}{
				"whatsapp_number": number,
				"updated_at":      time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("user_id = ?", id).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) RecordProgress(ctx context.Context, id string, moduleNumber, milestoneNumber int, at time.Time) error {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return err
	}

	res := db.Model(&model.User{}).
		Where("user_id = ?", id).
		Updates(map[string]interface{}{
			"current_module_number":    moduleNumber,
			"current_milestone_number": milestoneNumber,
			"last_attendance_at":       at,
			"updated_at":               time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) Upsert(ctx context.Context, user *model.User) (bool, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return false, err
	}

	user.Email = model.NormalizeEmail(user.Email)
	var existing model.User
	err = db.Where("email = ?", user.Email).First(&existing).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{"name": user.Name, "updated_at": time.Now()}
		if user.WhatsappNumber != nil {
			updates["whatsapp_number"] = *user.WhatsappNumber
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return false, err
		}
		user.UserID = existing.UserID
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// a concurrent import may have inserted the same email meanwhile
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(user)
		if res.Error != nil {
			return false, translateWriteError(res.Error)
		}
		return res.RowsAffected > 0, nil
	default:
		return false, err
	}
}
