// Package identity is the single boundary adapter around the two
// browser-persisted hints the portal keeps: the user-identifier convenience
// default and the per-visitor flow ID. Everything else in the codebase
// receives identifiers as explicit arguments; only this package touches
// cookies.
package identity

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	userCookieName = "premium_user"
	flowCookieName = "premium_flow"

	userHintTTL = 30 * 24 * time.Hour
)

var ErrInvalidHint = errors.New("invalid user hint")

// hintClaims wraps the user identifier in a signed token so a tampered
// cookie reads as absent instead of as someone else's identifier.
type hintClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager reads and writes the portal's cookies.
type Manager struct {
	secretKey []byte
	secure    bool
}

// NewManager creates a Manager signing with the given secret. secure controls
// the cookies' Secure attribute.
func NewManager(secretKey string, secure bool) *Manager {
	return &Manager{
		secretKey: []byte(secretKey),
		secure:    secure,
	}
}

// UserHint returns the remembered user identifier, or "" when the cookie is
// absent, expired or fails signature verification.
func (m *Manager) UserHint(r *http.Request) string {
	cookie, err := r.Cookie(userCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	userID, err := m.parseHint(cookie.Value)
	if err != nil {
		return ""
	}
	return userID
}

// RememberUser stores the user identifier as a signed cookie.
func (m *Manager) RememberUser(w http.ResponseWriter, userID string) {
	token, err := m.signHint(userID)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     userCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		Expires:  time.Now().Add(userHintTTL),
		SameSite: http.SameSiteLaxMode,
	})
}

// FlowID returns the visitor's flow ID, minting and setting one when the
// browser has none yet. The flow ID keys the server-side page state.
func (m *Manager) FlowID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flowCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     flowCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (m *Manager) signHint(userID string) (string, error) {
	claims := hintClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(userHintTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

func (m *Manager) parseHint(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &hintClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidHint
		}
		return m.secretKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*hintClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidHint
	}
	return claims.UserID, nil
}
