package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RandomSlugLength is the length of the code GenerateRandomCode returns.
const RandomSlugLength = 12

// GenerateRandomCode returns RandomSlugLength lowercase hex characters. The result is
// a valid slug on its own.
func GenerateRandomCode() (string, error) {
	buf := make([]byte, RandomSlugLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate slug code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
