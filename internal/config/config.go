package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rustbible/internal/content"
	"rustbible/internal/search"
	"rustbible/internal/sitemap"
)

// Config holds all configuration for the application.
type Config struct {
	PublicDir   string
	SiteBaseURL string
	VersePolicy content.VersePolicy
	SearchLimit int
	DBPath      string
	APIPort     string
	LogLevel    string
	LogFormat   string
}

// Configuration keys. Each is read from the upper-cased environment variable
// of the same name.
const (
	KeyPublicDir   = "public_dir"
	KeySiteBaseURL = "site_base_url"
	KeyVersePolicy = "verse_policy"
	KeySearchLimit = "search_limit"
	KeyDBPath      = "db_path"
	KeyAPIPort     = "api_port"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
)

// flagNames maps configuration keys to their command-line flags.
var flagNames = map[string]string{
	KeyPublicDir:   "public-dir",
	KeySiteBaseURL: "base-url",
	KeyVersePolicy: "verse-policy",
	KeySearchLimit: "search-limit",
	KeyDBPath:      "db",
	KeyAPIPort:     "port",
	KeyLogLevel:    "log-level",
	KeyLogFormat:   "log-format",
}

// RegisterFlags adds the configuration flags to flags. Flag defaults are
// empty so unset flags never mask environment values.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(flagNames[KeyPublicDir], "", "content root containing Books/ and Lessons/ (PUBLIC_DIR)")
	flags.String(flagNames[KeySiteBaseURL], "", "absolute site URL used in sitemap.xml (SITE_BASE_URL)")
	flags.String(flagNames[KeyVersePolicy], "", "verse numbering: numbered or sequential (VERSE_POLICY)")
	flags.Int(flagNames[KeySearchLimit], 0, "maximum search results (SEARCH_LIMIT)")
	flags.String(flagNames[KeyDBPath], "", "SQLite database path (DB_PATH)")
	flags.String(flagNames[KeyAPIPort], "", "preview server port (API_PORT)")
	flags.String(flagNames[KeyLogLevel], "", "debug, info, warn or error (LOG_LEVEL)")
	flags.String(flagNames[KeyLogFormat], "", "text or json (LOG_FORMAT)")
}

// Load reads configuration from flags, environment variables and defaults,
// in that order of precedence. If a .env file exists in the current directory
// or a parent, it is loaded first; variables already set take precedence over
// .env values. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetDefault(KeyPublicDir, "./public")
	v.SetDefault(KeySiteBaseURL, sitemap.DefaultBaseURL)
	v.SetDefault(KeyVersePolicy, string(content.VerseNumbered))
	v.SetDefault(KeySearchLimit, strconv.Itoa(search.DefaultLimit))
	v.SetDefault(KeyDBPath, "./data/rustbible.db")
	v.SetDefault(KeyAPIPort, "9000")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagNames {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		PublicDir:   v.GetString(KeyPublicDir),
		SiteBaseURL: v.GetString(KeySiteBaseURL),
		DBPath:      v.GetString(KeyDBPath),
		APIPort:     v.GetString(KeyAPIPort),
		LogLevel:    strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:   strings.ToLower(v.GetString(KeyLogFormat)),
	}

	if cfg.PublicDir == "" {
		return nil, fmt.Errorf("PUBLIC_DIR is required")
	}

	policy, err := content.ParseVersePolicy(v.GetString(KeyVersePolicy))
	if err != nil {
		return nil, fmt.Errorf("VERSE_POLICY: %w", err)
	}
	cfg.VersePolicy = policy

	limit, err := strconv.Atoi(v.GetString(KeySearchLimit))
	if err != nil {
		return nil, fmt.Errorf("SEARCH_LIMIT must be a valid integer: %w", err)
	}
	if limit <= 0 || limit > search.DefaultLimit {
		return nil, fmt.Errorf("SEARCH_LIMIT must be between 1 and %d, got %d", search.DefaultLimit, limit)
	}
	cfg.SearchLimit = limit

	if port, err := strconv.Atoi(cfg.APIPort); err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("API_PORT must be a port number, got %q", cfg.APIPort)
	}

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// ParseLogLevel maps a LOG_LEVEL value to a slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", level)
	}
}

// loadDotEnv loads .env from the current directory, then the nearest one
// found walking up at most five parents.
func loadDotEnv() {
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}
