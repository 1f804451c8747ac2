package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammad-yeasin/wave2-attendance/internal/service"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/response"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/validate"
)

// Error codes carried in the response envelope.
const (
	CodeInvalidInput       = 10001
	CodeUserNotFound       = 20001
	CodeWindowClosed       = 30001
	CodeDuplicate          = 30002
	CodeStorageUnavailable = 50300
)

const (
	msgInvalidForm        = "The form is not valid. Please fill in every field."
	msgInvalidEmail       = "The email is not valid. Please try again."
	msgInvalidWhatsapp    = "The WhatsApp number is not valid."
	msgWindowClosed       = "Attendance cannot be submitted now. Try between 8 PM and 12 AM (Bangladesh time)."
	msgUserNotFound       = "User not found."
	msgEmailNotFound      = "This email is not in our records. Contact the admin in the WhatsApp group."
	msgDuplicate          = "You have already submitted attendance for today."
	msgStorageUnavailable = "The service is temporarily unavailable. Please try again shortly."
)

// bindError answers a request whose body failed to decode or validate.
func bindError(c *gin.Context, v *validate.Validator, message string, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, CodeInvalidInput, message, v.Messages(err))
}

// handleServiceError maps workflow rejections onto status and envelope code.
// notFoundMsg lets each endpoint phrase the missing-user case its own way.
func handleServiceError(c *gin.Context, err error, invalidMsg, notFoundMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, CodeInvalidInput, invalidMsg, verr.Details)
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, CodeInvalidInput, invalidMsg)
	case errors.Is(err, service.ErrWindowClosed):
		response.Forbidden(c, CodeWindowClosed, msgWindowClosed)
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, CodeUserNotFound, notFoundMsg)
	case errors.Is(err, service.ErrDuplicateSubmission):
		response.Conflict(c, CodeDuplicate, msgDuplicate)
	case errors.Is(err, service.ErrStorageUnavailable):
		_ = c.Error(err)
		response.ServiceUnavailable(c, CodeStorageUnavailable, msgStorageUnavailable)
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
