// Package config provides functionality for loading and accessing environment variables.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/sheet-ledger/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// The sheet the register was first built for. Override with sheet.id and
// sheet.gid.
const (
	DefaultSheetID  = "1n2WYI0WVIS3kGdn40IKlfa_frQx_95-RIyta2QyPFXM"
	DefaultSheetGID = "1782469559"
)

var (
	once sync.Once
	// Global logger instance used before a Config is available
	Logger = logrus.New()
)

// ConfigureLogging applies LOG_LEVEL and LOG_FORMAT to the global Logger
// and returns it.
func ConfigureLogging() *logrus.Logger {
	logging.Configure(Logger, GetEnv("LOG_LEVEL", "info"), os.Getenv("LOG_FORMAT"))
	return Logger
}

// LoadEnv loads environment variables from a .env file in the working
// directory or its parent, if one exists. Variables already set win.
func LoadEnv() {
	once.Do(func() {
		envFile := FindEnvFile()
		if envFile == "" {
			Logger.Debug("No .env file found, using environment variables")
			return
		}

		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
			return
		}
		Logger.Debugf("Loaded environment variables from %s", envFile)

		ConfigureLogging()
	})
}

// FindEnvFile returns the .env file in the working directory or its parent,
// or "" when there is none.
func FindEnvFile() string {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
