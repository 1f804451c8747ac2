package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/muhammad-yeasin/wave2-attendance/internal/repository"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/metrics"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/validate"
)

// Service aggregates every service.
type Service struct {
	Attendance AttendanceService
	User       UserService
}

// NewService wires services over the shared repositories.
func NewService(
	repo *repository.Repository,
	v *validate.Validator,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		Attendance: NewAttendanceService(repo, v, m, logger, time.Now),
		User:       NewUserService(repo, v, logger),
	}
}
