package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML layout of CONFIG_FILE. API keys and client secrets are read
// only from the environment.
type fileConfig struct {
	Port   string     `yaml:"port"`
	Env    string     `yaml:"env"`
	CORS   []string   `yaml:"corsAllowOrigins"`
	Store  fileStore  `yaml:"store"`
	Gemini fileGemini `yaml:"gemini"`
	Google fileGoogle `yaml:"google"`
	UI     fileUI     `yaml:"ui"`
}

type fileStore struct {
	Driver      string `yaml:"driver"`
	DatabaseURL string `yaml:"databaseUrl"`
	SQLitePath  string `yaml:"sqlitePath"`
}

type fileGemini struct {
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"`
}

type fileGoogle struct {
	ClientID    string `yaml:"clientId"`
	RedirectURL string `yaml:"redirectUrl"`
}

type fileUI struct {
	RedirectURL string `yaml:"redirectUrl"`
	BaseURL     string `yaml:"baseUrl"`
}

func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	values := map[string]string{
		"PORT":                fc.Port,
		"ENV":                 fc.Env,
		"STORE_DRIVER":        fc.Store.Driver,
		"DATABASE_URL":        fc.Store.DatabaseURL,
		"SQLITE_PATH":         fc.Store.SQLitePath,
		"GEMINI_MODEL":        fc.Gemini.Model,
		"GEMINI_TIMEOUT":      fc.Gemini.Timeout,
		"GOOGLE_CLIENT_ID":    fc.Google.ClientID,
		"GOOGLE_REDIRECT_URL": fc.Google.RedirectURL,
		"UI_REDIRECT_URL":     fc.UI.RedirectURL,
		"UI_BASE_URL":         fc.UI.BaseURL,
	}
	if len(fc.CORS) > 0 {
		values["CORS_ALLOW_ORIGINS"] = strings.Join(fc.CORS, ",")
	}
	return values, nil
}
