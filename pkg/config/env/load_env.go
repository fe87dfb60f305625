package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads a .env file into the process environment. ENV_PATH
// overrides defaultPath when set. A missing file is fatal in local mode
// only; deployed environments get their variables injected and skip it.
func LoadDotEnv(env string, defaultPath string) error {
	path := os.Getenv("ENV_PATH")
	if path == "" {
		slog.Info("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		path = defaultPath
	}

	if err := godotenv.Load(path); err != nil {
		if env == "local" || env == "" {
			slog.Error("Failed to load environment variables in local mode", "error", err)
			return err
		}
		slog.Debug("Skipping .env ...")
	}

	return nil
}
