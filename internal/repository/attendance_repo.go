package repository

import (
	"context"

	"github.com/muhammad-yeasin/wave2-attendance/internal/model"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/database"
)

// AttendanceRepository append-only attendance ledger
type AttendanceRepository interface {
	// Exists is an advisory pre-check; Create is the authoritative duplicate guard.
	Exists(ctx context.Context, userID, date string) (bool, error)
	// Create returns pkgerrors.ErrDuplicateKey when (user, date) is already taken.
	Create(ctx context.Context, record *model.Attendance) error
	GetByUserAndDate(ctx context.Context, userID, date string) (*model.Attendance, error)
}

type attendanceRepo struct {
	conn database.Conn
}

// NewAttendanceRepo creates an AttendanceRepository.
func NewAttendanceRepo(conn database.Conn) AttendanceRepository {
	return &attendanceRepo{conn: conn}
}

func (r *attendanceRepo) Exists(ctx context.Context, userID, date string) (bool, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return false, err
	}
	var count int64
	err = db.Model(&model.Attendance{}).
		Where("user_id = ? AND attendance_date = ?", userID, date).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.Attendance) error {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return err
	}
	return translateWriteError(db.Create(record).Error)
}

func (r *attendanceRepo) GetByUserAndDate(ctx context.Context, userID, date string) (*model.Attendance, error) {
	db, err := r.conn.DB(ctx)
	if err != nil {
		return nil, err
	}
	var record model.Attendance
	err = db.Where("user_id = ? AND attendance_date = ?", userID, date).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
