package session

import (
	"strings"

	"github.com/google/uuid"
)

// MaxIDLength bounds accepted client-supplied session ids
const MaxIDLength = 128

// NewID returns a fresh random session id
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether id may be used as a session id: non-blank, at
// most MaxIDLength bytes, and made of letters, digits, '-' or '_'.
func IsValidID(id string) bool {
	if strings.TrimSpace(id) == "" || len(id) > MaxIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
