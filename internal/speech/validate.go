package speech

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyText is returned for text with nothing to pronounce.
var ErrEmptyText = errors.New("text cannot be empty")

// ValidateText rejects text that is empty or has no printable characters.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	for _, r := range text {
		if unicode.IsGraphic(r) && !unicode.IsSpace(r) {
			return nil
		}
	}
	return ErrEmptyText
}
