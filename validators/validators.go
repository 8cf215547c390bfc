package validators

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/kamaumbugua/socialnet/backend/internal/models"
)

// CustomValidator adapts go-playground/validator to echo's Validator interface
type CustomValidator struct {
	validate *validator.Validate
}

// NewValidator creates the validator wired into echo via e.Validator
func NewValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

// Validate validates a bound request struct against its validate tags
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

var validate = validator.New()

func isEmpty(value string) bool {
	return strings.TrimSpace(value) == ""
}

// ValidateSignup checks the signup payload and returns per-field messages.
// An empty map means the payload is valid.
func ValidateSignup(req models.SignupRequest) map[string]string {
	errors := map[string]string{}

	if isEmpty(req.Email) {
		errors["email"] = "Provide an email"
	} else if err := validate.Var(req.Email, "email"); err != nil {
		errors["email"] = "Please provide a valid email"
	}

	if isEmpty(req.Password) {
		errors["password"] = "Provide a password"
	} else if len(req.Password) < 6 {
		errors["password"] = "Password must have more than 6 characters"
	}
	if req.Password != req.ConfirmPassword {
		errors["confirmPassword"] = "Passwords do not match"
	}

	if isEmpty(req.Handle) {
		errors["handle"] = "Provide a user handle"
	}

	return errors
}

// ValidateLogin checks the login payload and returns per-field messages
func ValidateLogin(req models.LoginRequest) map[string]string {
	errors := map[string]string{}

	if isEmpty(req.Email) {
		errors["email"] = "Provide an email"
	}
	if isEmpty(req.Password) {
		errors["password"] = "Provide a password"
	}

	return errors
}

// SanitizeProfile trims the optional profile fields and normalizes the
// website to carry an http prefix. Empty fields are left untouched.
func SanitizeProfile(req models.UpdateProfileRequest) map[string]string {
	details := map[string]string{}

	if !isEmpty(req.Bio) {
		details["bio"] = strings.TrimSpace(req.Bio)
	}
	if !isEmpty(req.Website) {
		website := strings.TrimSpace(req.Website)
		if !strings.HasPrefix(website, "http") {
			website = "http://" + website
		}
		details["website"] = website
	}
	if !isEmpty(req.Location) {
		details["location"] = strings.TrimSpace(req.Location)
	}

	return details
}
