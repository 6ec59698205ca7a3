// Package session handles the identifiers that tie a client's questions
// together.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidID is returned for identifiers that are not canonical UUIDs.
var ErrInvalidID = errors.New("invalid session id")

const canonicalLen = 36

// ParseID accepts only the 8-4-4-4-12 hyphenated form. uuid.Parse alone
// also takes braces, urn:uuid: prefixes and the undashed form.
func ParseID(s string) (uuid.UUID, error) {
	if len(s) != canonicalLen {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return id, nil
}

// IsCanonical reports whether s is a canonical UUID string.
func IsCanonical(s string) bool {
	_, err := ParseID(s)
	return err == nil
}

// NewID returns a fresh random (v4) session id.
func NewID() string {
	return uuid.NewString()
}
