package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ght-core/internal/adapters/driven/auth"
	"github.com/custodia-labs/ght-core/internal/core/domain"
)

func (c *cli) newHashSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret <secret>",
		Short: "Hash a client secret for API_CLIENT_SECRET_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := strings.TrimSpace(args[0])
			if secret == "" {
				return errors.New("secret must not be empty")
			}
			// The signing key is irrelevant for hashing.
			hash, err := auth.NewAdapter("").HashSecret(secret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// newTokenCmd signs a token locally with API_JWT_SECRET, skipping the
// client credential exchange.
func (c *cli) newTokenCmd() *cobra.Command {
	var (
		clientID string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an API bearer token with API_JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := c.env("API_JWT_SECRET", "")
			if secret == "" {
				return errors.New("API_JWT_SECRET is not set")
			}
			if clientID == "" {
				return errors.New("--client-id is required")
			}
			if ttl <= 0 {
				return errors.New("--ttl must be positive")
			}

			claims := domain.NewTokenClaims(clientID, time.Now(), ttl)
			token, err := auth.NewAdapter(secret).GenerateToken(claims)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", c.env("API_CLIENT_ID", ""), "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", domain.DefaultTokenTTL, "token lifetime")
	return cmd
}
