// cmd/meal-plan/serve.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mcp-meal-plan/internal/config"
	"mcp-meal-plan/internal/server"
)

// serveOptions holds the serve flags. Flags the user set override the config
// file and environment; unset flags leave them alone.
type serveOptions struct {
	configPath string
	transport  string
	host       string
	address    string
	port       int
	dbPath     string
}

func newServeCmd() *cobra.Command {
	return serveCommand(&serveOptions{})
}

func serveCommand(opts *serveOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the meal plan HTTP and MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&opts.transport, "transport", "http", "Transport mode: http")
	flags.IntVar(&opts.port, "port", 8011, "Port for HTTP transport")
	flags.StringVar(&opts.host, "host", "0.0.0.0", "Host address")
	flags.StringVar(&opts.address, "address", "", "Address (alias for host)")
	flags.StringVar(&opts.dbPath, "db-path", "/data/meal-plan.db", "Database path")

	return cmd
}

// config loads the config file and environment, then applies the flags
// changed on cmd.
func (o *serveOptions) config(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Transport = o.transport
	}
	if flags.Changed("host") {
		cfg.Host = o.host
	}
	// address is an alias for host
	if o.address != "" {
		cfg.Host = o.address
	}
	if flags.Changed("port") {
		cfg.Port = o.port
	}
	if flags.Changed("db-path") {
		cfg.DBPath = o.dbPath
	}
	return cfg, nil
}

func runServer(cfg *config.Config) error {
	srv, err := server.NewMealPlanServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-sigCh:
		log.Println("Received shutdown signal")
	case runErr = <-errCh:
		log.Printf("Server error: %v", runErr)
	}

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	return runErr
}
