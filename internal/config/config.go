package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration.
type Config struct {
	HTTP struct {
		Addr           string   // default: :3001
		AllowedOrigins []string // default: *
	}
	Notion struct {
		BaseURL    string // default: https://api.notion.com
		Version    string // default: 2022-06-28
		Timeout    time.Duration
		APIToken   string // only used by the pull command
		DatabaseID string
	}
	MySQL struct {
		DSN string // optional; enables the archive. Needs parseTime=true&multiStatements=true
	}
	Sync struct {
		Timezone string // e.g. Local (default), UTC, Europe/Berlin
		Location *time.Location
	}
}

// Load reads configuration from a .env file in the working directory, if any,
// and then from environment variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	cfg.HTTP.Addr = os.Getenv("HTTP_ADDR")
	if cfg.HTTP.Addr == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3001"
		}
		cfg.HTTP.Addr = ":" + port
	}
	cfg.HTTP.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}

	cfg.Notion.BaseURL = os.Getenv("NOTION_BASE_URL")
	if cfg.Notion.BaseURL == "" {
		cfg.Notion.BaseURL = "https://api.notion.com"
	}
	cfg.Notion.Version = os.Getenv("NOTION_VERSION")
	if cfg.Notion.Version == "" {
		cfg.Notion.Version = "2022-06-28"
	}
	cfg.Notion.Timeout = 30 * time.Second
	if v := os.Getenv("NOTION_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return cfg, errors.New("NOTION_TIMEOUT must be a positive duration like 30s")
		}
		cfg.Notion.Timeout = d
	}
	cfg.Notion.APIToken = os.Getenv("NOTION_API_TOKEN")
	cfg.Notion.DatabaseID = os.Getenv("NOTION_DATABASE_ID")

	cfg.MySQL.DSN = os.Getenv("MYSQL_DSN")

	cfg.Sync.Timezone = os.Getenv("SYNC_TZ")
	if cfg.Sync.Timezone == "" {
		cfg.Sync.Timezone = "Local"
	}
	loc, err := time.LoadLocation(cfg.Sync.Timezone)
	if err != nil {
		return cfg, fmt.Errorf("invalid SYNC_TZ %q: %w", cfg.Sync.Timezone, err)
	}
	cfg.Sync.Location = loc

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
