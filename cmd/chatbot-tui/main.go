// ABOUTME: Terminal UI entry point for the chatbot admin console
// ABOUTME: Loads config, wires the gateway client, and runs bubbletea

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389/chatbot-console/internal/config"
	"github.com/2389/chatbot-console/internal/console"
	"github.com/2389/chatbot-console/internal/gateway"
	"github.com/2389/chatbot-console/internal/history"
	"github.com/2389/chatbot-console/internal/session"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	org := flag.String("org", "", "Organization to open (overrides config)")
	flag.Parse()

	if err := run(*configPath, *org); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, orgOverride string) error {
	cfg, err := config.Load(resolveConfigPath(configPath))
	if err != nil {
		return err
	}

	cleanup, err := setupLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer cleanup()

	sess := session.New(cfg.Gateway.Token)
	if !sess.Authenticated() {
		sess = session.NewFromEnv()
	}
	defer sess.Close()

	client := gateway.New(cfg.Gateway.BaseURL, sess,
		gateway.WithTimeout(cfg.Gateway.Timeout))

	options := []console.Option{
		console.WithPageSize(cfg.Console.PageSize),
	}

	org := cfg.Console.DefaultOrganization
	if orgOverride != "" {
		org = orgOverride
	}
	if org != "" {
		options = append(options, console.WithDefaultOrganization(org))
	}

	if cfg.Audit.Path != "" {
		auditLog, err := history.Open(cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("opening audit log: %w", err)
		}
		defer auditLog.Close()

		actor := sess.Identity().Name
		if actor == "" {
			actor = "operator"
		}
		options = append(options, console.WithAudit(auditLog, actor))
	}

	model := console.NewModel(client, options...)
	program := tea.NewProgram(model, tea.WithAltScreen())

	slog.Info("console starting", "gateway", cfg.Gateway.BaseURL)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return nil
}

// resolveConfigPath picks the config file: explicit flag, then the
// CHATBOT_CONSOLE_CONFIG env var, then ./config.yaml, then the XDG
// location.
func resolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if envPath := os.Getenv("CHATBOT_CONSOLE_CONFIG"); envPath != "" {
		return envPath
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "chatbot-console", "config.yaml")
}

// setupLogger configures slog. The TUI owns the terminal, so without a
// configured log file everything is discarded.
func setupLogger(cfg config.Logging) (func(), error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var writer io.Writer = io.Discard
	cleanup := func() {}
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		writer = file
		cleanup = func() { _ = file.Close() }
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(writer, opts)
	} else {
		handler = slog.NewTextHandler(writer, opts)
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}
