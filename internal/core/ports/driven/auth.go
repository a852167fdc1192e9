package driven

import "github.com/custodia-labs/ght-core/internal/core/domain"

// AuthAdapter handles API client credentials and bearer tokens
type AuthAdapter interface {
	// Secret operations
	HashSecret(secret string) (string, error)
	VerifySecret(secret, hash string) bool

	// Token operations
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
