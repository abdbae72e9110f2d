package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Authenticate logs in once and returns the session every later call must use.
// Any failure wraps ErrSetup.
func (s serviceImpl) Authenticate(ctx context.Context) (Session, error) {
	slog.Info("logging in", "email", s.creds.Email)
	resp, err := s.gw.Login(ctx, s.creds)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w: login request failed: %w", ErrSetup, ErrTransport, err)
	}
	if !isSuccess(resp.StatusCode) {
		return Session{}, fmt.Errorf("%w: %w: login returned %d: %s", ErrSetup, ErrStatus, resp.StatusCode, snippet(resp.Body))
	}
	var out loginResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return Session{}, fmt.Errorf("%w: %w: login body: %v", ErrSetup, ErrDecode, err)
	}
	token := models.AccessToken(out.AccessToken)
	if token.Empty() {
		return Session{}, fmt.Errorf("%w: %w: failed to retrieve access token during login", ErrSetup, ErrMissingToken)
	}

	info := InspectToken(token)
	if info.JWT {
		slog.Info("login ok", "subject", info.Subject, "expires_at", info.ExpiresAt)
	} else {
		slog.Info("login ok", "token_len", info.Length)
	}
	return Session{Token: token, AuthenticatedAt: s.clock()}, nil
}

// requireToken enforces that no authenticated call runs without a token.
func requireToken(sess Session) error {
	if sess.Token.Empty() {
		return fmt.Errorf("%w: %w", ErrSetup, ErrMissingToken)
	}
	return nil
}

// TokenInfo is what can be said about a token without trusting it.
type TokenInfo struct {
	Length    int       `json:"length"`
	JWT       bool      `json:"jwt"`
	Subject   string    `json:"subject,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// InspectToken reads the claims of a JWT-shaped token without verifying its
// signature. Opaque tokens only report their length.
func InspectToken(token models.AccessToken) TokenInfo {
	info := TokenInfo{Length: len(token)}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(string(token), claims); err != nil {
		return info
	}
	info.JWT = true
	info.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time.UTC()
	}
	return info
}

func isSuccess(code int) bool { return code >= 200 && code < 300 }

// snippet keeps failure messages readable when the server returns a large body.
func snippet(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
