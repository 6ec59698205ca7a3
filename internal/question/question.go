// Package question models the natural-language questions sent to the Q&A
// backend.
package question

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrEmpty is returned for blank questions.
var ErrEmpty = errors.New("question is empty")

// Question is a normalised question text tagged with its language.
type Question struct {
	Text string       `json:"text"`
	Lang language.Tag `json:"lang"`
}

// New normalises text to NFC, trims surrounding space and detects the
// language.
func New(text string) (Question, error) {
	text = strings.TrimSpace(norm.NFC.String(text))
	if text == "" {
		return Question{}, ErrEmpty
	}
	return Question{Text: text, Lang: Detect(text)}, nil
}

// Detect returns language.Korean when the text holds any Hangul and
// language.English otherwise.
func Detect(text string) language.Tag {
	if ContainsHangul(text) {
		return language.Korean
	}
	return language.English
}

// ContainsHangul reports whether s has at least one Hangul code point.
func ContainsHangul(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			return true
		}
	}
	return false
}

// IsInterrogative reports whether the question ends with a question mark,
// ASCII or full width.
func (q Question) IsInterrogative() bool {
	return strings.HasSuffix(q.Text, "?") || strings.HasSuffix(q.Text, "？")
}
