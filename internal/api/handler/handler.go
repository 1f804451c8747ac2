package handler

import (
	"github.com/muhammad-yeasin/wave2-attendance/internal/service"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/validate"
)

// Handler aggregates every HTTP handler.
type Handler struct {
	Attendance *AttendanceHandler
	User       *UserHandler
}

// NewHandler builds the aggregate. v renders binding errors.
func NewHandler(svc *service.Service, v *validate.Validator) *Handler {
	return &Handler{
		Attendance: NewAttendanceHandler(svc.Attendance, v),
		User:       NewUserHandler(svc.User, v),
	}
}
