package notifier

import (
	"fmt"
	"log"
	"strings"
)

// Notifier delivers password-reset tokens to users. The auth service's
// contract ends at handing over the token; the transport (SMTP, SMS) lives
// behind this interface.
type Notifier interface {
	SendPasswordReset(email, resetToken string) error
}

// LogNotifier writes reset links to the process log instead of sending real
// email. This is the development transport.
type LogNotifier struct {
	frontendURL string
}

// NewLogNotifier creates a notifier that logs reset links built against the
// given frontend base URL.
func NewLogNotifier(frontendURL string) *LogNotifier {
	return &LogNotifier{frontendURL: strings.TrimRight(frontendURL, "/")}
}

// SendPasswordReset logs the reset link for the given account.
func (n *LogNotifier) SendPasswordReset(email, resetToken string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", n.frontendURL, resetToken)
	log.Printf("Password reset requested for %s. Reset link: %s", email, link)
	return nil
}
