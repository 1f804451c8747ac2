package dto

import "github.com/muhammad-yeasin/wave2-attendance/pkg/civiltime"

// ── Attendance module ──

// SubmitAttendanceRequest daily submission
type SubmitAttendanceRequest struct {
	UserID          string  `json:"userId"          binding:"required,uuid"`
	ModuleNumber    int     `json:"moduleNumber"    binding:"required,min=1"`
	MilestoneNumber int     `json:"milestoneNumber" binding:"required,min=1"`
	StudyHours      float64 `json:"studyHours"      binding:"required,gte=0.5,lte=24"`
	LearningSummary string  `json:"learningSummary" binding:"required,min=5,max=2000"`
}

// SubmitAttendanceResponse successful submission
type SubmitAttendanceResponse struct {
	AttendanceID string `json:"attendanceId"`
}

// WindowStatusResponse result of the read-only window check
type WindowStatusResponse struct {
	Allowed bool            `json:"allowed"`
	Now     civiltime.Parts `json:"now"`
	Message string          `json:"message"`
}
