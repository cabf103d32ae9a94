package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"user@example.com",
		"first.last@sub.example.co.uk",
		"user+tag@example.io",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"user@",
		"user@example",
		"user example@example.com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("secret123"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 129)))
}

func TestValidateName(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateName("first name", "Grace"))
	assert.Error(t, ValidateName("first name", "G"))
	assert.Error(t, ValidateName("last name", strings.Repeat("x", 61)))

	err := ValidateName("first name", "G")
	assert.Contains(t, err.Error(), "first name")
}

func TestValidateReason(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateReason("I need this for my project work"))
	assert.Error(t, ValidateReason("too short"))
	assert.Error(t, ValidateReason("       padded       "))

	// Exactly the minimum passes.
	assert.NoError(t, ValidateReason(strings.Repeat("x", MinReasonLength)))
}

func TestValidateSoftwareSpec(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateSoftwareSpec("GitLab", "Source hosting and CI", "17.3"))
	assert.Error(t, ValidateSoftwareSpec("G", "Source hosting and CI", "17.3"))
	assert.Error(t, ValidateSoftwareSpec("GitLab", "short", "17.3"))
	assert.Error(t, ValidateSoftwareSpec("GitLab", "Source hosting and CI", ""))
}
