package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/ght-core/internal/core/domain"
	"github.com/custodia-labs/ght-core/internal/core/ports/driven"
	"github.com/custodia-labs/ght-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// AuthConfig holds the single API client allowed to request tokens
type AuthConfig struct {
	ClientID         string
	ClientSecretHash string
	TokenTTL         time.Duration
}

// authService implements the AuthService interface
type authService struct {
	authAdapter driven.AuthAdapter
	config      AuthConfig
	now         func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(authAdapter driven.AuthAdapter, config AuthConfig) driving.AuthService {
	if config.TokenTTL <= 0 {
		config.TokenTTL = domain.DefaultTokenTTL
	}
	return &authService{
		authAdapter: authAdapter,
		config:      config,
		now:         time.Now,
	}
}

// IssueToken verifies the client credentials and signs a token
func (s *authService) IssueToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResponse, error) {
	// Validate input
	if req.ClientID == "" || req.ClientSecret == "" {
		return nil, domain.ErrInvalidInput
	}

	// No client configured means token exchange is disabled
	if s.config.ClientID == "" || s.config.ClientSecretHash == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if req.ClientID != s.config.ClientID {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.authAdapter.VerifySecret(req.ClientSecret, s.config.ClientSecretHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	claims := domain.NewTokenClaims(req.ClientID, now, s.config.TokenTTL)

	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	return &domain.TokenResponse{
		Token:     token,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
	}, nil
}

// ValidateToken validates a JWT token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	// Parse and validate JWT
	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	// Check expiration
	if claims.IsExpired(s.now()) {
		return nil, domain.ErrTokenExpired
	}

	if claims.ClientID == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.AuthContext{
		ClientID:  claims.ClientID,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
	}, nil
}
