package checkout

import (
	"context"
	"errors"
	"log"

	"github.com/Awais417/passwordreset/internal/models"
	"github.com/Awais417/passwordreset/internal/premiumapi"
)

// VerifyResult is the terminal state of the post-redirect verification page.
// Either Verified is true and User is set, or Message explains the failure.
type VerifyResult struct {
	Verified bool
	Message  string
	User     *models.User
}

// Verify runs the one-shot session verification for the success page. A
// missing session ID is an immediate terminal failure with no network call.
// A success flag without a user payload counts as a verification failure.
func Verify(ctx context.Context, api PremiumAPI, sessionID string) VerifyResult {
	if sessionID == "" {
		return VerifyResult{Message: "No session ID found in URL"}
	}

	result, err := api.VerifySession(ctx, sessionID)
	if err != nil {
		log.Printf("[VERIFY] Session %s verification failed: %v", sessionID, err)
		var apiErr *premiumapi.APIError
		if errors.As(err, &apiErr) {
			return VerifyResult{Message: apiErr.Message}
		}
		return VerifyResult{Message: "Failed to verify payment. Please contact support."}
	}

	if !result.Success || result.User == nil {
		msg := result.Message
		if msg == "" {
			msg = "Payment verification failed"
		}
		return VerifyResult{Message: msg}
	}

	return VerifyResult{Verified: true, Message: result.Message, User: result.User}
}
