package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns a hex-encoded random token of byteLen random bytes.
// Used for session tokens and OAuth state values.
func GenerateToken(byteLen int) (string, error) {
	if byteLen <= 0 {
		byteLen = 32
	}

	bytes := make([]byte, byteLen)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
