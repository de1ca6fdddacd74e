package handler

import (
	"strconv"

	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/service"
)

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	FullName        string `json:"fullName" validate:"required"`
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type otpRequest struct {
	Phone    string `json:"phone" validate:"required"`
	FullName string `json:"fullName"`
}

type otpVerifyRequest struct {
	Phone    string `json:"phone" validate:"required"`
	OTP      string `json:"otp" validate:"required"`
	FullName string `json:"fullName"`
}

// sessionResponse carries a freshly issued bearer token.
type sessionResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func newSessionResponse(token string, sess *domain.Session, redirect string) sessionResponse {
	return sessionResponse{
		Token:    token,
		Role:     sess.Role,
		Username: sess.Username,
		Redirect: redirect,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Booking ---

type selectRequest struct {
	Index *int `json:"index" validate:"required"`
}

type pincodeRequest struct {
	Side        string `json:"side" validate:"required,oneof=origin destination"`
	Pincode     string `json:"pincode"`
	Counterpart string `json:"counterpart"`
}

type confirmationResponse struct {
	Confirmation *domain.Confirmation `json:"confirmation"`
	Wizard       service.WizardView   `json:"wizard"`
}

type verifyResponse struct {
	sessionResponse
	Resubmitted  bool                 `json:"resubmitted"`
	Confirmation *domain.Confirmation `json:"confirmation,omitempty"`
	SubmitError  string               `json:"submit_error,omitempty"`
	Wizard       service.WizardView   `json:"wizard"`
}

// --- Tracking ---

type trackingRequest struct {
	TrackingNumber string `json:"trackingNumber"`
}

// formValues flattens a JSON form into the wizard's string inputs.
// Booleans become "true"/"" so unchecked boxes read as unset.
func formValues(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		case bool:
			if val {
				out[k] = "true"
			} else {
				out[k] = ""
			}
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		}
	}
	return out
}

// ErrorEnvelope is the canonical error body for all API errors.
type ErrorEnvelope struct {
	Error       string            `json:"error"`
	Fields      map[string]string `json:"fields,omitempty"`
	Redirect    string            `json:"redirect,omitempty"`
	OTPRequired bool              `json:"otp_required,omitempty"`
}
