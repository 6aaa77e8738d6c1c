package forms

import (
	"strings"

	"github.com/fleetops/fleet-maintenance/internal/models"
)

// Credential bounds.
const (
	minUsernameLen = 3
	minPasswordLen = 4
)

// ValidateUsername checks the login username and returns an error message,
// or "" when acceptable.
func ValidateUsername(username string) string {
	if strings.TrimSpace(username) == "" {
		return "username is required"
	}
	if len(username) < minUsernameLen {
		return "username must be at least 3 characters"
	}
	if strings.ContainsAny(username, " \t") {
		return "username must not contain spaces"
	}
	return ""
}

// ValidatePassword checks the login password and returns an error message,
// or "" when acceptable.
func ValidatePassword(password string) string {
	if password == "" {
		return "password is required"
	}
	if len(password) < minPasswordLen {
		return "password must be at least 4 characters"
	}
	return ""
}

// ValidateLogin runs the local credential checks that must pass before any
// network call. It returns per-field messages and the first invalid field.
func ValidateLogin(c models.Credentials) (map[string]string, string) {
	errs := make(map[string]string)
	first := ""
	if msg := ValidateUsername(c.Username); msg != "" {
		errs[FieldUsername] = msg
		first = FieldUsername
	}
	if msg := ValidatePassword(c.Password); msg != "" {
		errs[FieldPassword] = msg
		if first == "" {
			first = FieldPassword
		}
	}
	return errs, first
}
