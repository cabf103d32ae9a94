// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinReasonLength is the floor for access-request justifications.
	MinReasonLength = 10

	minNameLength     = 2
	maxNameLength     = 60
	minPasswordLength = 6
	maxPasswordLength = 128
	maxEmailLength    = 254
	minDescription    = 10
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("email must not exceed %d characters", maxEmailLength)
	}
	return nil
}

// ValidatePassword checks if a password meets length requirements
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLength)
	}
	return nil
}

// ValidateName checks a first or last name. The label is used in the error
// message ("first name", "last name").
func ValidateName(label, name string) error {
	name = strings.TrimSpace(name)
	if len(name) < minNameLength {
		return fmt.Errorf("%s must be at least %d characters long", label, minNameLength)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%s must not exceed %d characters", label, maxNameLength)
	}
	return nil
}

// ValidateReason checks an access-request justification.
func ValidateReason(reason string) error {
	if len(strings.TrimSpace(reason)) < MinReasonLength {
		return fmt.Errorf("reason must be at least %d characters long", MinReasonLength)
	}
	return nil
}

// ValidateSoftwareSpec checks the catalog entry fields shared by create and update.
func ValidateSoftwareSpec(name, description, version string) error {
	if len(strings.TrimSpace(name)) < minNameLength {
		return fmt.Errorf("name must be at least %d characters long", minNameLength)
	}
	if len(strings.TrimSpace(description)) < minDescription {
		return fmt.Errorf("description must be at least %d characters long", minDescription)
	}
	if strings.TrimSpace(version) == "" {
		return fmt.Errorf("version is required")
	}
	return nil
}
