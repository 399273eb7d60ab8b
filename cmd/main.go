/*
Package main is the entry point for the CryptoHub server.

The serve command loads configuration, initializes the global logger, opens the session store,
starts the HTTP server and shuts everything down gracefully on SIGINT or SIGTERM. The token
command mints a session for local development.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cryptohub/internal/configs"
	"cryptohub/internal/pkg/logx"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cryptohub",
		Short:         "CryptoHub web server with a live navigation bar",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newTokenCmd())

	return root
}

// loadConfig reads the configuration and initializes the global logger from it.
func loadConfig() (*configs.AppConfig, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment())
	return cfg, nil
}
