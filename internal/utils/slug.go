package utils

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugify derives a URL slug from title, truncated to maxLen without a trailing dash.
// Titles with nothing transliterable fall back to a random code.
func Slugify(title string, maxLen int) (string, error) {
	s := slug.Make(title)
	if s == "" {
		code, err := GenerateRandomCode()
		if err != nil {
			return "", err
		}
		s = code
	}

	if maxLen > 0 && len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	return s, nil
}
