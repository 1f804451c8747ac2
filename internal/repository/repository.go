package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/muhammad-yeasin/wave2-attendance/pkg/database"
	pkgerrors "github.com/muhammad-yeasin/wave2-attendance/pkg/errors"
)

// Repository aggregates every repository.
type Repository struct {
	User       UserRepository
	Attendance AttendanceRepository
}

// NewRepository builds the aggregate over one shared connection.
func NewRepository(conn database.Conn) *Repository {
	return &Repository{
		User:       NewUserRepo(conn),
		Attendance: NewAttendanceRepo(conn),
	}
}

// pgUniqueViolation SQLSTATE unique_violation
const pgUniqueViolation = "23505"

// translateWriteError maps unique-constraint failures to pkgerrors.ErrDuplicateKey
// and leaves every other error untouched.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrDuplicateKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pkgerrors.ErrDuplicateKey
	}
	return err
}
