package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"polyscope/internal/api"
	"polyscope/internal/bookmarks"
	"polyscope/internal/config"
	"polyscope/internal/kvstore"
	"polyscope/internal/ui"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&configPath, "c", "", "Path to config file (shorthand)")
	flag.Parse()

	// .env is optional; environment beats config file for the API base.
	_ = godotenv.Load()

	configSvc := config.NewService()
	cfg := loadConfig(configSvc, configPath)

	if base := os.Getenv("POLYSCOPE_API_BASE"); base != "" {
		cfg.API.BaseURL = base
	}

	// Log to a file so the TUI stays clean.
	logFile, err := os.OpenFile(cfg.UISettings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err == nil {
		defer logFile.Close()
		log.Logger = zerolog.New(logFile).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.Nop()
	}
	if os.Getenv("POLYSCOPE_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	kv, err := openStore(cfg)
	if err != nil {
		fmt.Printf("Error opening bookmark store: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	bookmarkStore := bookmarks.NewStore(kv)

	client := api.NewClient(api.ClientOptions{
		BaseURL:        cfg.API.BaseURL,
		RequestTimeout: cfg.API.RequestTimeout,
		RequestsPerSec: cfg.API.RequestsPerSec,
	})

	log.Info().Str("base_url", cfg.API.BaseURL).Msg("starting polyscope")

	model := ui.NewModel(cfg, client, bookmarkStore)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program error")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads from the explicit path when given, otherwise from the
// default location; a missing or broken config falls back to defaults
// and is saved for next time.
func loadConfig(svc config.Service, path string) *config.Config {
	if path != "" {
		if cfg, err := svc.LoadFromPath(path); err == nil {
			return cfg
		}
		log.Warn().Str("path", path).Msg("could not load config, using defaults")
		return config.Default()
	}

	cfg, err := svc.Load()
	if err != nil {
		cfg = config.Default()
	}
	// First run: persist defaults so the file is there to edit.
	if err := svc.Save(cfg); err != nil {
		log.Warn().Err(err).Msg("could not save config")
	}
	return cfg
}

// openStore picks the bookmark persistence backend from config.
func openStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Bookmarks.Backend {
	case "sqlite":
		return kvstore.NewSQLiteStore(cfg.Bookmarks.Path)
	default:
		return kvstore.NewFileStore(cfg.Bookmarks.Path), nil
	}
}
