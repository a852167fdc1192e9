package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/ght-core/internal/core/domain"
)

func TestNewAdapter(t *testing.T) {
	adapter := NewAdapter("test-secret")
	if adapter == nil {
		t.Fatal("expected non-nil adapter")
	}
	if string(adapter.jwtSecret) != "test-secret" {
		t.Error("expected jwt secret to be set")
	}
}

func TestNewAdapterWithCost(t *testing.T) {
	adapter := NewAdapterWithCost("test-secret", 4)
	if adapter.bcryptCost != 4 {
		t.Errorf("expected bcrypt cost 4, got %d", adapter.bcryptCost)
	}
}

func TestHashSecret(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4) // Low cost for faster tests

	hash, err := adapter.HashSecret("client-secret")
	if err != nil {
		t.Fatalf("failed to hash secret: %v", err)
	}
	if hash == "" || hash == "client-secret" {
		t.Error("expected a real hash")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected bcrypt prefix, got %q", hash[:4])
	}

	again, _ := adapter.HashSecret("client-secret")
	if hash == again {
		t.Error("expected different hashes for same secret (due to salt)")
	}
}

func TestVerifySecret(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4)
	hash, _ := adapter.HashSecret("correct")

	tests := []struct {
		name   string
		secret string
		hash   string
		want   bool
	}{
		{"correct secret", "correct", hash, true},
		{"wrong secret", "wrong", hash, false},
		{"invalid hash", "correct", "not-a-valid-hash", false},
		{"empty hash", "correct", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.VerifySecret(tt.secret, tt.hash); got != tt.want {
				t.Errorf("VerifySecret() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	token, err := adapter.GenerateToken(domain.NewTokenClaims("discord-bot", time.Now(), time.Hour))
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	// JWT tokens have 3 parts separated by dots
	if parts := strings.Count(token, "."); parts != 2 {
		t.Errorf("expected JWT with 2 dots (3 parts), got %d dots", parts)
	}
}

func TestParseToken_ValidToken(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")
	original := domain.NewTokenClaims("discord-bot", time.Now(), time.Hour)

	token, _ := adapter.GenerateToken(original)

	parsed, err := adapter.ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if parsed.ClientID != original.ClientID {
		t.Errorf("expected ClientID %s, got %s", original.ClientID, parsed.ClientID)
	}
	if parsed.IssuedAt != original.IssuedAt {
		t.Errorf("expected IssuedAt %d, got %d", original.IssuedAt, parsed.IssuedAt)
	}
	if parsed.ExpiresAt != original.ExpiresAt {
		t.Errorf("expected ExpiresAt %d, got %d", original.ExpiresAt, parsed.ExpiresAt)
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	// Issued 3 hours ago, expired 2 hours ago
	token, _ := adapter.GenerateToken(domain.NewTokenClaims("discord-bot", time.Now().Add(-3*time.Hour), time.Hour))

	_, err := adapter.ParseToken(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	adapter1 := NewAdapter("secret-1")
	adapter2 := NewAdapter("secret-2")

	token, _ := adapter1.GenerateToken(domain.NewTokenClaims("discord-bot", time.Now(), time.Hour))

	_, err := adapter2.ParseToken(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	adapter := NewAdapter("test-secret")

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   "discord-bot",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := foreign.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	if _, err := adapter.ParseToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_MalformedToken(t *testing.T) {
	adapter := NewAdapter("test-secret")

	testCases := []string{
		"",
		"not-a-jwt",
		"invalid.token.here",
		"only.two.parts.missing",
		"header.payload", // missing signature
	}

	for _, tc := range testCases {
		_, err := adapter.ParseToken(tc)
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid for malformed token %q, got %v", tc, err)
		}
	}
}

// Benchmark tests
func BenchmarkVerifySecret(b *testing.B) {
	adapter := NewAdapterWithCost("secret", 4)
	hash, _ := adapter.HashSecret("testsecret")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = adapter.VerifySecret("testsecret", hash)
	}
}

func BenchmarkParseToken(b *testing.B) {
	adapter := NewAdapter("test-secret")
	token, _ := adapter.GenerateToken(domain.NewTokenClaims("discord-bot", time.Now(), time.Hour))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = adapter.ParseToken(token)
	}
}
