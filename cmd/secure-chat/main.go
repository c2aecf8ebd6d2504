// ABOUTME: Entry point for the secure-chat terminal client
// ABOUTME: Thin presentation layer; all state lives behind the chat facade

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"secure-chat/internal/chat"
	"secure-chat/internal/config"
	"secure-chat/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                                        _           _
 ___  ___  ___ _   _ _ __ ___     ___| |__   __ _| |_
/ __|/ _ \/ __| | | | '__/ _ \___/ __| '_ \ / _' | __|
\__ \  __/ (__| |_| | | |  __/___| (__| | | | (_| | |_
|___/\___|\___|\__,_|_|  \___|   \___|_| |_|\__,_|\__|
`

// getConfigPath returns the path to the config file.
// Priority: SECURE_CHAT_CONFIG env var > XDG_CONFIG_HOME/secure-chat/config.yaml > ~/.config/secure-chat/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("SECURE_CHAT_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "secure-chat", "config.yaml")
}

func main() {
	configPath := flag.String("config", "", "Path to config file")
	dbPath := flag.String("db", "", "Path to the chat database (overrides config)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, *configPath, *dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGoodbye!")
}

func run(ctx context.Context, configPath, dbPath string) error {
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	setupLogging(cfg)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	svc := chat.New(st, slog.Default())

	ui := &ui{
		svc:   svc,
		in:    bufio.NewScanner(os.Stdin),
		me:    color.New(color.FgBlue, color.Bold),
		them:  color.New(color.FgGreen, color.Bold),
		faint: gray,
		warn:  color.New(color.FgRed),
	}
	return ui.loop(ctx)
}

// loadConfig loads the config file if one exists, and falls back to
// defaults when it doesn't. An explicit -config path must exist.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = getConfigPath()
	}

	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// readLine prompts and reads one trimmed input line, honoring ctx cancellation.
func (u *ui) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Print(prompt)

	inputCh := make(chan string, 1)
	errCh := make(chan error, 1)

	go func() {
		if u.in.Scan() {
			inputCh <- u.in.Text()
			return
		}
		if err := u.in.Err(); err != nil {
			errCh <- err
		} else {
			errCh <- io.EOF
		}
	}()

	select {
	case <-ctx.Done():
		return "", io.EOF
	case err := <-errCh:
		return "", err
	case input := <-inputCh:
		return strings.TrimSpace(input), nil
	}
}
