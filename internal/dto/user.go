package dto

// ── User module ──

// VerifyEmailRequest email lookup
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,max=255"`
}

// VerifyEmailResponse wraps the public projection
type VerifyEmailResponse struct {
	User UserPublicResponse `json:"user"`
}

// UserPublicResponse what a learner may see about themselves
type UserPublicResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	HasWhatsapp    bool    `json:"hasWhatsapp"`
	WhatsappNumber *string `json:"whatsappNumber"` // null when unset
}

// UpdateWhatsappRequest contact number registration
type UpdateWhatsappRequest struct {
	UserID         string `json:"userId"         binding:"required,uuid"`
	WhatsappNumber string `json:"whatsappNumber" binding:"required,bdmobile"`
}

// ImportUserRow one parsed roster row
type ImportUserRow struct {
	Row            int
	Name           string
	Email          string
	WhatsappNumber string
}

// ImportUserResponse roster import summary
type ImportUserResponse struct {
	Total   int               `json:"total"`
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Failed  int               `json:"failed"`
	Errors  []ImportUserError `json:"errors,omitempty"`
}

// ImportUserError per-row failure
type ImportUserError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}
