package domain

import "time"

// DefaultTokenTTL is the lifetime of an issued API token
const DefaultTokenTTL = 24 * time.Hour

// AuthContext identifies the API client behind a request
type AuthContext struct {
	ClientID  string    `json:"client_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenRequest exchanges client credentials for a bearer token
type TokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// TokenResponse is returned after a successful token exchange
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	ClientID  string `json:"client_id"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// IsExpired checks the expiry against now
func (c *TokenClaims) IsExpired(now time.Time) bool {
	return now.Unix() >= c.ExpiresAt
}

// NewTokenClaims builds claims for a client valid for ttl from now
func NewTokenClaims(clientID string, now time.Time, ttl time.Duration) *TokenClaims {
	return &TokenClaims{
		ClientID:  clientID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}
