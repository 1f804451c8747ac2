package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/muhammad-yeasin/wave2-attendance/internal/dto"
	"github.com/muhammad-yeasin/wave2-attendance/internal/model"
	"github.com/muhammad-yeasin/wave2-attendance/internal/repository"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/civiltime"
	pkgerrors "github.com/muhammad-yeasin/wave2-attendance/pkg/errors"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/metrics"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/validate"
)

const (
	windowOpenMessage   = "Attendance is open. Please fill in today's form."
	windowClosedMessage = "Attendance is not open right now. Keep studying and submit between 8 PM and 12 AM (Bangladesh time)."
)

// AttendanceService daily submission workflow
type AttendanceService interface {
	WindowStatus(ctx context.Context) *dto.WindowStatusResponse
	Submit(ctx context.Context, req *dto.SubmitAttendanceRequest) (*dto.SubmitAttendanceResponse, error)
}

type attendanceService struct {
	repo      *repository.Repository
	validator *validate.Validator
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService creates an AttendanceService. now is the clock every
// window check and ledger date is derived from.
func NewAttendanceService(
	repo *repository.Repository,
	v *validate.Validator,
	m *metrics.Metrics,
	logger *zap.Logger,
	now func() time.Time,
) AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &attendanceService{repo: repo, validator: v, metrics: m, logger: logger, now: now}
}

// ────────────────────── WindowStatus ──────────────────────

func (s *attendanceService) WindowStatus(_ context.Context) *dto.WindowStatusResponse {
	parts := civiltime.Resolve(s.now())
	allowed := civiltime.HourInWindow(parts.Hour)

	msg := windowClosedMessage
	if allowed {
		msg = windowOpenMessage
	}
	return &dto.WindowStatusResponse{Allowed: allowed, Now: parts, Message: msg}
}

// ────────────────────── Submit ──────────────────────

func (s *attendanceService) Submit(ctx context.Context, req *dto.SubmitAttendanceRequest) (*dto.SubmitAttendanceResponse, error) {
	// 1. input shape and bounds
	if err := s.validator.Struct(req); err != nil {
		s.metrics.ObserveSubmission(metrics.OutcomeInvalidInput)
		return nil, &ValidationError{Details: s.validator.Messages(err)}
	}

	// 2. window, from the same instant that keys the ledger
	now := s.now()
	parts := civiltime.Resolve(now)
	if !civiltime.HourInWindow(parts.Hour) {
		s.metrics.ObserveSubmission(metrics.OutcomeWindowClosed)
		return nil, ErrWindowClosed
	}

	// 3. learner
	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.ObserveSubmission(metrics.OutcomeUserNotFound)
			return nil, ErrUserNotFound
		}
		return nil, s.storageFailure("load user", req.UserID, err)
	}

	// 4. advisory duplicate check
	exists, err := s.repo.Attendance.Exists(ctx, user.UserID, parts.DateString)
	if err != nil {
		return nil, s.storageFailure("check attendance", user.UserID, err)
	}
	if exists {
		s.metrics.ObserveSubmission(metrics.OutcomeDuplicate)
		return nil, ErrDuplicateSubmission
	}

	// 5. persist; the unique index decides races the pre-check missed
	record := &model.Attendance{
		UserID:          user.UserID,
		ModuleNumber:    req.ModuleNumber,
		MilestoneNumber: req.MilestoneNumber,
		StudyHours:      req.StudyHours,
		LearningSummary: req.LearningSummary,
		AttendanceDate:  parts.DateString,
		AttendanceTime:  parts.TimeString,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			s.logger.Info("concurrent duplicate attendance rejected by unique index",
				zap.String("user_id", user.UserID),
				zap.String("date", parts.DateString),
			)
			s.metrics.ObserveSubmission(metrics.OutcomeDuplicate)
			return nil, ErrDuplicateSubmission
		}
		return nil, s.storageFailure("create attendance", user.UserID, err)
	}

	// 6. progress cursor; the ledger row above is already authoritative
	if err := s.repo.User.RecordProgress(ctx, user.UserID, req.ModuleNumber, req.MilestoneNumber, now); err != nil {
		s.logger.Warn("attendance stored but progress cursor not advanced",
			zap.String("user_id", user.UserID),
			zap.String("attendance_id", record.AttendanceID),
			zap.Error(err),
		)
	}

	s.metrics.ObserveSubmission(metrics.OutcomeSucceeded)
	s.logger.Info("attendance submitted",
		zap.String("user_id", user.UserID),
		zap.String("attendance_id", record.AttendanceID),
		zap.String("date", parts.DateString),
	)

	return &dto.SubmitAttendanceResponse{AttendanceID: record.AttendanceID}, nil
}

func (s *attendanceService) storageFailure(op, userID string, err error) error {
	s.metrics.ObserveSubmission(metrics.OutcomeStorageFailure)
	s.logger.Error("attendance storage failure",
		zap.String("op", op),
		zap.String("user_id", userID),
		zap.Error(err),
	)
	return storageError(err)
}
