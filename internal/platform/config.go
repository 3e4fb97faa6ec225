package platform

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by the client.
const (
	EnvAPIHost     = "NOTES_API_HOST"
	EnvAPIBase     = "NOTES_API_BASE"
	EnvSessionFile = "NOTES_SESSION_FILE"
)

// Defaults used when the environment is silent.
const (
	DefaultAPIHost = "http://localhost:8000"
	DefaultAPIBase = "/api"
)

// LoadEnv loads variables from the given .env files (".env" when none are
// given) without overriding the real environment. Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// BaseURL resolves the API base URL. An absolute NOTES_API_BASE is used as is;
// otherwise it is joined to NOTES_API_HOST.
func BaseURL() string {
	base := getEnv(EnvAPIBase, DefaultAPIBase)
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return strings.TrimRight(base, "/")
	}
	host := strings.TrimRight(getEnv(EnvAPIHost, DefaultAPIHost), "/")
	return host + "/" + strings.Trim(base, "/")
}

// SessionFile returns where the token is persisted.
func SessionFile() string {
	if path := getEnv(EnvSessionFile, ""); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "notely", "session.yaml")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
