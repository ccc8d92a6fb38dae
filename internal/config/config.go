package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL = "https://api.clashroyale.com/v1"
	defaultProxyURL   = "https://proxy.royaleapi.dev/v1"
)

type Config struct {
	APIToken            string
	UseProxy            bool
	APIBaseURL          string
	DBPath              string
	Addr                string
	LogLevel            string
	PollIntervalMinutes int
	RateLimitPerMinute  int
	FetchConcurrency    int
	PlayerTags          string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	cfg := Config{
		APIToken:            envOr("CLASH_ROYALE_API_TOKEN", ""),
		UseProxy:            envBoolOr("USE_ROYALEAPI_PROXY", false),
		DBPath:              envOr("DB_PATH", "file:friendsleague.db"),
		Addr:                envOr("ADDR", ":8080"),
		LogLevel:            envOr("LOG_LEVEL", "info"),
		PollIntervalMinutes: envIntOr("POLL_INTERVAL_MINUTES", 15),
		RateLimitPerMinute:  envIntOr("RATE_LIMIT_PER_MINUTE", 10),
		FetchConcurrency:    envIntOr("FETCH_CONCURRENCY", 4),
		PlayerTags:          envOr("PLAYER_TAGS", ""),
	}

	// The RoyaleAPI proxy mirrors the official API paths, so switching is
	// only a matter of base URL.
	if cfg.UseProxy {
		cfg.APIBaseURL = envOr("ROYALEAPI_PROXY_URL", defaultProxyURL)
	} else {
		cfg.APIBaseURL = envOr("CLASH_ROYALE_API_BASE_URL", defaultAPIBaseURL)
	}

	return cfg
}

// Validate checks the configuration for values that would make the program
// misbehave at runtime. All problems are reported at once so operators can
// fix their environment in a single pass.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.APIBaseURL == "" {
		problems = append(problems, "CLASH_ROYALE_API_BASE_URL cannot be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if c.PollIntervalMinutes < 1 {
		problems = append(problems, fmt.Sprintf("POLL_INTERVAL_MINUTES must be at least 1, got %d", c.PollIntervalMinutes))
	}
	if c.RateLimitPerMinute < 1 {
		problems = append(problems, fmt.Sprintf("RATE_LIMIT_PER_MINUTE must be at least 1, got %d", c.RateLimitPerMinute))
	}
	if c.FetchConcurrency < 1 {
		problems = append(problems, fmt.Sprintf("FETCH_CONCURRENCY must be at least 1, got %d", c.FetchConcurrency))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Roster returns the tracked player tags as a list, '#' prefixes stripped.
func (c Config) Roster() []string {
	if c.PlayerTags == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(c.PlayerTags, ",") {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
