// Package resetflow implements the password-reset form's submit logic: a
// local precondition chain followed by a single call to the external reset
// endpoint. Password mutation itself happens entirely on the API side.
package resetflow

import (
	"context"
	"errors"
	"log"
	"unicode/utf8"

	"github.com/Awais417/passwordreset/internal/premiumapi"
)

// MinPasswordLength is the only local rule applied to the new password; the
// API enforces its own policy on top.
const MinPasswordLength = 6

// ResetAPI is the slice of the premium API the submitter needs.
type ResetAPI interface {
	ResetPassword(ctx context.Context, email, token, password string) (*premiumapi.ResetPasswordResponse, error)
}

// Outcome is the terminal state of a submit attempt. KeepPassword tells the
// form whether to retain the entered password for another try.
type Outcome struct {
	Success      bool
	Message      string
	KeepPassword bool
}

// Submitter runs the reset form submit against the API.
type Submitter struct {
	api ResetAPI
}

// NewSubmitter creates a submitter backed by the given API.
func NewSubmitter(api ResetAPI) *Submitter {
	return &Submitter{api: api}
}

// Submit validates locally, then issues at most one network call. Each
// precondition failure is a hard local rejection: missing email or token
// means the reset link itself is unusable, and a short password never leaves
// the page.
func (s *Submitter) Submit(ctx context.Context, email, token, password string) Outcome {
	if email == "" || token == "" {
		return Outcome{
			Message:      "Invalid or missing reset link. Please request a new one.",
			KeepPassword: true,
		}
	}

	// Length is counted in characters, not bytes.
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return Outcome{
			Message:      "Password must be at least 6 characters long.",
			KeepPassword: true,
		}
	}

	_, err := s.api.ResetPassword(ctx, email, token, password)
	if err != nil {
		log.Printf("[RESET] Reset failed for %s: %v", email, err)
		var apiErr *premiumapi.APIError
		if errors.As(err, &apiErr) {
			return Outcome{Message: apiErr.Message, KeepPassword: true}
		}
		return Outcome{Message: "Something went wrong. Please try again.", KeepPassword: true}
	}

	return Outcome{
		Success: true,
		Message: "Your password has been reset successfully. You can now log in.",
	}
}
