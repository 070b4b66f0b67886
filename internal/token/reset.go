package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes is the entropy of a reset token. 32 bytes hex-encode to the
// 64-character tokens embedded in reset links.
const resetTokenBytes = 32

// GenerateResetToken returns a high-entropy, single-use password reset token.
// Unlike session tokens, reset tokens carry no structure of their own:
// validity is established purely by repository lookup and expiry comparison.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
