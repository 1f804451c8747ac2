package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/muhammad-yeasin/wave2-attendance/internal/dto"
	"github.com/muhammad-yeasin/wave2-attendance/internal/service"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/response"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/validate"
)

const (
	msgEmailVerified = "Email verified."
	msgWhatsappSaved = "WhatsApp number saved."
)

// UserHandler user module HTTP handler
type UserHandler struct {
	userSvc   service.UserService
	validator *validate.Validator
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService, v *validate.Validator) *UserHandler {
	return &UserHandler{userSvc: userSvc, validator: v}
}

// VerifyEmail looks a learner up by email.
// POST /api/v1/users/verify-email
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.validator, msgInvalidEmail, err)
		return
	}

	user, err := h.userSvc.VerifyEmail(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err, msgInvalidEmail, msgEmailNotFound)
		return
	}

	response.OKWithMessage(c, msgEmailVerified, dto.VerifyEmailResponse{User: *user})
}

// UpdateWhatsapp registers the learner's contact number.
// POST /api/v1/users/whatsapp
func (h *UserHandler) UpdateWhatsapp(c *gin.Context) {
	var req dto.UpdateWhatsappRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.validator, msgInvalidWhatsapp, err)
		return
	}

	if err := h.userSvc.UpdateWhatsapp(c.Request.Context(), &req); err != nil {
		handleServiceError(c, err, msgInvalidWhatsapp, msgUserNotFound)
		return
	}

	response.OKWithMessage(c, msgWhatsappSaved, nil)
}
