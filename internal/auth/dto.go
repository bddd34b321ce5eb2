package auth

import (
	"strings"

	"github.com/ScottHCollier/inntrac-app/internal"
)

const minPasswordLength = 6

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterDTO creates a self-service account.
type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetPasswordDTO completes an invited account using the token from the
// welcome email.
type SetPasswordDTO struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	var errs []internal.ValidationError
	if d.Email == "" {
		errs = append(errs, internal.ValidationError{
			Field: "email", Message: "email is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if d.Password == "" {
		errs = append(errs, internal.ValidationError{
			Field: "password", Message: "password is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	return toValidationError(errs)
}

func (d RegisterDTO) Validate() error {
	var errs []internal.ValidationError
	if !strings.Contains(d.Email, "@") {
		errs = append(errs, internal.ValidationError{
			Field: "email", Message: "a valid email is required", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	if len(d.Password) < minPasswordLength {
		errs = append(errs, internal.ValidationError{
			Field: "password", Message: "password must be at least 6 characters", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	return toValidationError(errs)
}

func (d SetPasswordDTO) Validate() error {
	var errs []internal.ValidationError
	if d.Token == "" {
		errs = append(errs, internal.ValidationError{
			Field: "token", Message: "token is required", Code: string(internal.ErrCodeInvalidToken),
		})
	}
	if len(d.Password) < minPasswordLength {
		errs = append(errs, internal.ValidationError{
			Field: "password", Message: "password must be at least 6 characters", Code: string(internal.ErrCodeValidationFailed),
		})
	}
	return toValidationError(errs)
}

func toValidationError(errs []internal.ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
		WithDetails(internal.ValidationErrors{Errors: errs})
}
