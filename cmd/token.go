package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"cryptohub/internal/app/auth"
	"cryptohub/internal/app/user"
	"cryptohub/internal/configs"
	"cryptohub/internal/pkg/auth/jwt"
)

func newTokenCmd() *cobra.Command {
	var (
		email    string
		provider string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Create a session and print its token",
		Long: "Creates a session in the configured store and prints a signed token. " +
			"Send it as a Bearer token or set it as the " + jwt.CookieName + " cookie. " +
			"The memory store lives inside the serve process, so with SESSION_STORE=memory " +
			"use serve --dev-email instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return fmt.Errorf("--email is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if cfg.SessionStore == configs.StoreMemory {
				return errMemoryStoreToken
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			store, closeStore, err := openSessionStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			token, err := mintToken(ctx, store, cfg.JWTSecret, email, provider, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email shown in the navbar")
	cmd.Flags().StringVar(&provider, "provider", user.ProviderPassword, "sign-in provider (password, google, github)")
	cmd.Flags().DurationVar(&ttl, "ttl", jwt.SessionExpiration, "session lifetime")

	return cmd
}

// errMemoryStoreToken is returned by the token command when its session would vanish with the
// CLI process.
var errMemoryStoreToken = errors.New("SESSION_STORE=memory is private to the serve process; " +
	"run `cryptohub serve --dev-email <email>` or use the postgres or redis store")

// mintToken creates a session for email in store and signs a token for it.
func mintToken(ctx context.Context, store auth.Store, secret, email, provider string, ttl time.Duration) (string, error) {
	u := user.User{
		ID:       uuid.NewString(),
		Email:    email,
		Provider: provider,
	}

	sess := auth.NewSession(u, ttl)
	if err := store.Create(ctx, sess); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := jwt.GenerateToken(&jwt.Payload{
		SessionID: sess.ID,
		Email:     u.Email,
		Provider:  u.Provider,
	}, u.ID, secret, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
