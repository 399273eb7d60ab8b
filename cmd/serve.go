package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cryptohub/internal/app/live"
	"cryptohub/internal/app/storage"
	"cryptohub/internal/app/user"
	"cryptohub/internal/handler"
	"cryptohub/internal/pkg/auth/jwt"
	"cryptohub/internal/pkg/logx"
)

// devLogin describes a session minted by serve at startup.
type devLogin struct {
	email    string
	provider string
}

func newServeCmd() *cobra.Command {
	var dev devLogin

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(dev)
		},
	}

	cmd.Flags().StringVar(&dev.email, "dev-email", "", "development only: create a session for this email at startup and log its token")
	cmd.Flags().StringVar(&dev.provider, "dev-provider", user.ProviderPassword, "sign-in provider for --dev-email")

	return cmd
}

func runServe(dev devLogin) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dev.email = strings.TrimSpace(dev.email)
	if dev.email != "" && !cfg.IsDevelopment() {
		return fmt.Errorf("--dev-email is only allowed in development")
	}

	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("session_store", cfg.SessionStore).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, closeStore, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if dev.email != "" {
		token, err := mintToken(ctx, sessions, cfg.JWTSecret, dev.email, dev.provider, jwt.SessionExpiration)
		if err != nil {
			return err
		}
		logx.Logger().Info().
			Str("email", dev.email).
			Str("cookie", jwt.CookieName).
			Str("token", token).
			Msg("Development session created. Send the token as a Bearer header or set it as the cookie.")
	}

	assets, err := storage.NewAssetService(ctx, storage.ServiceConfig{
		BaseURL:           cfg.AssetBaseURL,
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize asset service: %w", err)
	}

	manager := live.NewManager()

	router, stopRouter := handler.Router(&handler.AppDeps{
		Config:   cfg,
		Manager:  manager,
		Sessions: sessions,
		Assets:   assets,
		Version:  version,
	})
	defer stopRouter()

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logx.Info(fmt.Sprintf("CryptoHub server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	// Hijacked WebSocket connections are not tracked by the server, so the manager stops them.
	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	manager.Shutdown()

	logx.Info("Server gracefully stopped.")
	return nil
}
