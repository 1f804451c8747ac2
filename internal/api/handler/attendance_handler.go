package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/muhammad-yeasin/wave2-attendance/internal/dto"
	"github.com/muhammad-yeasin/wave2-attendance/internal/service"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/response"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/validate"
)

const msgAttendanceSaved = "Attendance saved. Thank you!"

// AttendanceHandler attendance module HTTP handler
type AttendanceHandler struct {
	svc       service.AttendanceService
	validator *validate.Validator
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(svc service.AttendanceService, v *validate.Validator) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, validator: v}
}

// WindowStatus reports whether submissions are open right now.
// GET /api/v1/attendance/window
func (h *AttendanceHandler) WindowStatus(c *gin.Context) {
	response.OK(c, h.svc.WindowStatus(c.Request.Context()))
}

// Submit records today's attendance.
// POST /api/v1/attendance
func (h *AttendanceHandler) Submit(c *gin.Context) {
	var req dto.SubmitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.validator, msgInvalidForm, err)
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, msgInvalidForm, msgUserNotFound)
		return
	}

	response.OKWithMessage(c, msgAttendanceSaved, resp)
}
