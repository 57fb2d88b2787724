package utils

import (
	"github.com/google/uuid"
)

// GenerateAPIKey generates a UUID string to be used as an API key
func GenerateAPIKey() string {
	return uuid.NewString()
}

// GenerateCSRFToken generates a per-session token for double-submit checks
func GenerateCSRFToken() string {
	return uuid.NewString()
}
