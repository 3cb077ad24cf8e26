// Package premiumapi is the HTTP client for the external premium API that
// owns all payment, coupon and account state. Every call is JSON over HTTPS
// against a configurable base URL; this package never interprets business
// rules, it only moves payloads and normalizes failures into messages the
// portal can display.
package premiumapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is used when no PAYMENT_API_URL or config override is set.
const DefaultBaseURL = "https://serverapis.vercel.app"

// APIError is a non-success response from the premium API with a displayable
// message already extracted from the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the premium API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the given base URL, falling back to
// DefaultBaseURL when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// errorBody is the best-effort shape of an error response. The API is not
// consistent: some endpoints nest the message under "error", some put it at
// the top level.
type errorBody struct {
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// apiError reads a non-success response into an APIError, falling back to
// the supplied message when the body carries none. A raw status code is
// never surfaced.
func apiError(resp *http.Response, fallback string) *APIError {
	var body errorBody
	_ = json.NewDecoder(resp.Body).Decode(&body)

	msg := fallback
	if body.Error != nil && body.Error.Message != "" {
		msg = body.Error.Message
	} else if body.Message != "" {
		msg = body.Message
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}

// CreateCheckoutSession asks the API for a hosted checkout session and
// returns its identifier and redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, reqBody CreateCheckoutSessionRequest) (*CreateCheckoutSessionResponse, error) {
	if reqBody.Currency == "" {
		reqBody.Currency = "usd"
	}

	resp, err := c.postJSON(ctx, "/payment/create-checkout-session", reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp, "Failed to create checkout session. Please try again.")
	}

	var session CreateCheckoutSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode checkout session: %v", err)
	}

	log.Printf("[API] Created checkout session %s for user %s", session.SessionID, reqBody.UserID)
	return &session, nil
}

// ValidateCoupon checks a coupon code against the API. A rejected code comes
// back as Success=false with a message rather than an error; only transport
// faults return a non-nil error.
func (c *Client) ValidateCoupon(ctx context.Context, code string) (*ValidateCouponResponse, error) {
	payload := struct {
		Code string `json:"code"`
	}{Code: code}

	resp, err := c.postJSON(ctx, "/coupon/validate", payload)
	if err != nil {
		return nil, fmt.Errorf("failed to validate coupon: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := apiError(resp, "Invalid coupon code")
		return &ValidateCouponResponse{Success: false, Message: apiErr.Message}, nil
	}

	var result ValidateCouponResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode coupon response: %v", err)
	}

	return &result, nil
}

// GetPaymentStatus fetches the entitlement status for a user.
func (c *Client) GetPaymentStatus(ctx context.Context, userID string) (*PaymentStatusResponse, error) {
	endpoint := fmt.Sprintf("%s/payment/status/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment status: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp, "Failed to get payment status. Please try again.")
	}

	var status PaymentStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode payment status: %v", err)
	}

	return &status, nil
}

// VerifySession verifies a checkout session after the redirect back from the
// hosted payment page.
func (c *Client) VerifySession(ctx context.Context, sessionID string) (*VerifySessionResponse, error) {
	payload := struct {
		SessionID string `json:"sessionId"`
	}{SessionID: sessionID}

	resp, err := c.postJSON(ctx, "/payment/verify-session", payload)
	if err != nil {
		return nil, fmt.Errorf("failed to verify session: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp, "Failed to verify session. Please try again.")
	}

	var result VerifySessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode verification response: %v", err)
	}

	return &result, nil
}

// ResetPassword submits a password reset carrying the one-time token from the
// reset link. The token is assumed single-use by the API; this client does
// not enforce that.
func (c *Client) ResetPassword(ctx context.Context, email, token, password string) (*ResetPasswordResponse, error) {
	payload := struct {
		Email    string `json:"email"`
		Token    string `json:"token"`
		Password string `json:"password"`
	}{Email: email, Token: token, Password: password}

	resp, err := c.postJSON(ctx, "/auth/reset-password", payload)
	if err != nil {
		return nil, fmt.Errorf("failed to reset password: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp, "Failed to reset password. Please try again.")
	}

	var result ResetPasswordResponse
	_ = json.NewDecoder(resp.Body).Decode(&result)

	return &result, nil
}
