package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	CORSAllowOrigin    []string
	DatabaseURL        string
	StoreDriver        string
	SQLitePath         string
	GeminiAPIKey       string
	GeminiModel        string
	GeminiTimeout      time.Duration
	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
	UIBaseURL          string
}

// AllowGuests reports whether X-Guest-Id identities are accepted.
func (c Config) AllowGuests() bool {
	return c.Env == "dev" || c.Env == "local"
}

// Load reads configuration in three layers: .env files, an optional YAML file named by
// CONFIG_FILE, then environment variables. Later layers win.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	values := defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		fileValues, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		values = merge(values, fileValues)
	}
	values = merge(values, fromEnv())

	return build(values)
}

func defaults() map[string]string {
	return map[string]string{
		"PORT":               "8080",
		"ENV":                "dev",
		"CORS_ALLOW_ORIGINS": "http://localhost:5173",
		"SQLITE_PATH":        "./data/matcher.db",
		"GEMINI_MODEL":       "gemini-2.5-flash",
		"GEMINI_TIMEOUT":     "0",
	}
}

var envKeys = []string{
	"PORT",
	"ENV",
	"CORS_ALLOW_ORIGINS",
	"DATABASE_URL",
	"STORE_DRIVER",
	"SQLITE_PATH",
	"GEMINI_API_KEY",
	"GEMINI_MODEL",
	"GEMINI_TIMEOUT",
	"JWT_SECRET",
	"GOOGLE_CLIENT_ID",
	"GOOGLE_CLIENT_SECRET",
	"GOOGLE_REDIRECT_URL",
	"UI_REDIRECT_URL",
	"UI_BASE_URL",
}

func fromEnv() map[string]string {
	out := make(map[string]string)
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			out[key] = val
		}
	}
	return out
}

func merge(base, overlay map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

func build(values map[string]string) (Config, error) {
	env := normalizeEnv(values["ENV"])
	dbURL := strings.TrimSpace(values["DATABASE_URL"])

	timeout, err := parseTimeout(values["GEMINI_TIMEOUT"])
	if err != nil {
		return Config{}, err
	}
	driver, err := normalizeStoreDriver(values["STORE_DRIVER"], dbURL)
	if err != nil {
		return Config{}, err
	}
	if driver == StorePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("STORE_DRIVER=postgres requires DATABASE_URL")
	}
	if env == "production" && driver == StoreMemory {
		log.Printf("warning: production is running with the in-memory store")
	}

	return Config{
		Port:               values["PORT"],
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(values["CORS_ALLOW_ORIGINS"]),
		DatabaseURL:        dbURL,
		StoreDriver:        driver,
		SQLitePath:         values["SQLITE_PATH"],
		GeminiAPIKey:       strings.TrimSpace(values["GEMINI_API_KEY"]),
		GeminiModel:        values["GEMINI_MODEL"],
		GeminiTimeout:      timeout,
		JWTSecret:          values["JWT_SECRET"],
		GoogleClientID:     values["GOOGLE_CLIENT_ID"],
		GoogleClientSecret: values["GOOGLE_CLIENT_SECRET"],
		GoogleRedirectURL:  values["GOOGLE_REDIRECT_URL"],
		UIRedirectURL:      values["UI_REDIRECT_URL"],
		UIBaseURL:          values["UI_BASE_URL"],
	}, nil
}

func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("GEMINI_TIMEOUT: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("GEMINI_TIMEOUT must not be negative")
	}
	return d, nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreDriver(raw, databaseURL string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		if databaseURL != "" {
			return StorePostgres, nil
		}
		return StoreMemory, nil
	case "memory", "mem":
		return StoreMemory, nil
	case "postgres", "postgresql", "pg":
		return StorePostgres, nil
	case "sqlite", "sqlite3":
		return StoreSQLite, nil
	default:
		return "", fmt.Errorf("unknown STORE_DRIVER %q", raw)
	}
}
