package password

import (
	"strings"
	"unicode"
)

// Strength buckets reported by Score. Only StrengthWeak blocks signup and
// password reset; medium and strong are both accepted.
const (
	StrengthWeak   = "weak"
	StrengthMedium = "medium"
	StrengthStrong = "strong"
)

const minLength = 8

// specialChars matches the punctuation set the frontend strength meter uses.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// Result holds the outcome of a password strength check.
type Result struct {
	Score    int      `json:"score"`
	Strength string   `json:"strength"`
	Feedback []string `json:"feedback"`
}

// Score rates a password against five independent checks, each worth one
// point: minimum length, uppercase, lowercase, digit, special character.
// Feedback lists the failed checks in that fixed order so responses stay
// deterministic.
func Score(password string) Result {
	score := 0
	feedback := []string{}

	if len(password) >= minLength {
		score++
	} else {
		feedback = append(feedback, "Password should be at least 8 characters long")
	}

	if strings.ContainsFunc(password, unicode.IsUpper) {
		score++
	} else {
		feedback = append(feedback, "Include at least one uppercase letter")
	}

	if strings.ContainsFunc(password, unicode.IsLower) {
		score++
	} else {
		feedback = append(feedback, "Include at least one lowercase letter")
	}

	if strings.ContainsAny(password, "0123456789") {
		score++
	} else {
		feedback = append(feedback, "Include at least one number")
	}

	if strings.ContainsAny(password, specialChars) {
		score++
	} else {
		feedback = append(feedback, "Include at least one special character")
	}

	strength := StrengthWeak
	if score >= 4 {
		strength = StrengthStrong
	} else if score == 3 {
		strength = StrengthMedium
	}

	return Result{Score: score, Strength: strength, Feedback: feedback}
}
