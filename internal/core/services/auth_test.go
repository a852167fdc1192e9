package services

import (
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/ght-core/internal/core/domain"
	"github.com/custodia-labs/ght-core/internal/core/ports/driven/mocks"
)

func newTestAuthService() (*mocks.MockAuthAdapter, *authService) {
	authAdapter := mocks.NewMockAuthAdapter()
	svc := NewAuthService(authAdapter, AuthConfig{
		ClientID:         "discord-bot",
		ClientSecretHash: "s3cret", // Mock hasher uses plain text comparison
		TokenTTL:         time.Hour,
	}).(*authService)
	return authAdapter, svc
}

func TestAuthService_IssueToken(t *testing.T) {
	_, svc := newTestAuthService()

	tests := []struct {
		name    string
		req     domain.TokenRequest
		wantErr error
	}{
		{
			name:    "valid credentials",
			req:     domain.TokenRequest{ClientID: "discord-bot", ClientSecret: "s3cret"},
			wantErr: nil,
		},
		{
			name:    "empty client id",
			req:     domain.TokenRequest{ClientID: "", ClientSecret: "s3cret"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "empty secret",
			req:     domain.TokenRequest{ClientID: "discord-bot", ClientSecret: ""},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "wrong secret",
			req:     domain.TokenRequest{ClientID: "discord-bot", ClientSecret: "guess"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "unknown client",
			req:     domain.TokenRequest{ClientID: "someone-else", ClientSecret: "s3cret"},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.IssueToken(context.Background(), tt.req)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp == nil {
				t.Fatal("expected response to be returned")
			}
			if resp.Token == "" {
				t.Error("expected token to be generated")
			}
			if resp.ExpiresAt.Before(time.Now()) {
				t.Error("expected expiry in the future")
			}
		})
	}
}

func TestAuthService_IssueToken_NoClientConfigured(t *testing.T) {
	svc := NewAuthService(mocks.NewMockAuthAdapter(), AuthConfig{})

	_, err := svc.IssueToken(context.Background(), domain.TokenRequest{ClientID: "x", ClientSecret: "y"})
	if err != domain.ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_DefaultTTL(t *testing.T) {
	svc := NewAuthService(mocks.NewMockAuthAdapter(), AuthConfig{}).(*authService)
	if svc.config.TokenTTL != domain.DefaultTokenTTL {
		t.Errorf("expected default TTL %v, got %v", domain.DefaultTokenTTL, svc.config.TokenTTL)
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	authAdapter, svc := newTestAuthService()

	resp, err := svc.IssueToken(context.Background(), domain.TokenRequest{
		ClientID:     "discord-bot",
		ClientSecret: "s3cret",
	})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	expired, _ := authAdapter.GenerateToken(domain.NewTokenClaims("discord-bot", time.Now().Add(-2*time.Hour), time.Hour))
	anonymous, _ := authAdapter.GenerateToken(domain.NewTokenClaims("", time.Now(), time.Hour))

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"valid token", resp.Token, nil},
		{"empty token", "", domain.ErrTokenInvalid},
		{"garbage token", "not-a-token!!", domain.ErrTokenInvalid},
		{"expired token", expired, domain.ErrTokenExpired},
		{"token without client", anonymous, domain.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authCtx, err := svc.ValidateToken(context.Background(), tt.token)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if authCtx.ClientID != "discord-bot" {
				t.Errorf("expected client discord-bot, got %s", authCtx.ClientID)
			}
			if !authCtx.ExpiresAt.Equal(resp.ExpiresAt) {
				t.Errorf("expected expiry %v, got %v", resp.ExpiresAt, authCtx.ExpiresAt)
			}
		})
	}
}

func TestAuthService_ValidateToken_UsesClock(t *testing.T) {
	_, svc := newTestAuthService()

	resp, err := svc.IssueToken(context.Background(), domain.TokenRequest{
		ClientID:     "discord-bot",
		ClientSecret: "s3cret",
	})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := svc.ValidateToken(context.Background(), resp.Token); err != domain.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}
