// Package validation provides input validation utilities
package validation

import (
	"regexp"
	"strings"

	"devconnect/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidEmail checks basic email format.
func ValidEmail(email string) bool {
	return len(email) <= 254 && emailRegex.MatchString(email)
}

// Registration validates a registration request, returning one field-level
// error per failing field.
func Registration(name, email, password string) []models.FieldError {
	var errs []models.FieldError
	if strings.TrimSpace(name) == "" {
		errs = append(errs, models.FieldError{Msg: "Name is required", Param: "name"})
	}
	if !ValidEmail(email) {
		errs = append(errs, models.FieldError{Msg: "Please include a valid email", Param: "email"})
	}
	if len(password) < 6 {
		errs = append(errs, models.FieldError{Msg: "Please enter a password with 6 or more characters", Param: "password"})
	}
	return errs
}

// Login validates a login request.
func Login(email, password string) []models.FieldError {
	var errs []models.FieldError
	if !ValidEmail(email) {
		errs = append(errs, models.FieldError{Msg: "Please include a valid email", Param: "email"})
	}
	if password == "" {
		errs = append(errs, models.FieldError{Msg: "Password is required", Param: "password"})
	}
	return errs
}

// Required returns a field error when value is blank, nil otherwise.
func Required(value, label, param string) *models.FieldError {
	if strings.TrimSpace(value) == "" {
		return &models.FieldError{Msg: label + " is required", Param: param}
	}
	return nil
}

// SplitSkills parses a comma-separated skills string into an ordered list,
// trimming whitespace and dropping empty segments.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
