package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	resetTokenBytes = 20
	// ResetTokenWindow is how long a reset token stays valid once issued.
	ResetTokenWindow = time.Hour
)

// GenerateResetToken returns a hex-encoded token carrying 20 bytes of
// entropy from crypto/rand. The generator is stateless and time-agnostic;
// the caller attaches the expiry when persisting the token.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
