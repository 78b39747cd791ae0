// Package config resolves the runtime configuration from viper, .env
// files and built-in defaults.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sisifus/jobflow/internal/classification"
	"github.com/sisifus/jobflow/internal/engine"
)

// Settings is the resolved runtime configuration.
type Settings struct {
	DBPath              string
	InputDir            string
	OutputDir           string
	PlatformDomains     []string
	GenericProviders    []string
	ChunkSize           int
	BodyScanLimit       int
	ConfidenceThreshold float64
}

// LoadSettings resolves settings from Viper, a local .env file, and
// defaults, in that order of precedence. Viper keys follow the
// JOBFLOW_ env prefix set up by the root command.
func LoadSettings() Settings {
	// A .env in the working directory seeds the environment before
	// viper reads it. Missing files are fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Debug("no .env file loaded", "error", err)
	}

	viper.SetDefault("database.path", "~/.local/share/jobflow/jobflow.db")
	viper.SetDefault("import.input_dir", "input")
	viper.SetDefault("export.output_dir", "output")
	viper.SetDefault("classify.chunk_size", engine.DefaultChunkSize)
	viper.SetDefault("classify.body_scan_limit", classification.DefaultBodyScanLimit)
	viper.SetDefault("classify.confidence_threshold", classification.DefaultConfidenceThreshold)
	viper.SetDefault("classify.platform_domains", classification.DefaultPlatformDomains())
	viper.SetDefault("classify.generic_providers", classification.DefaultGenericProviders())

	return Settings{
		DBPath:              ExpandPath(viper.GetString("database.path")),
		InputDir:            ExpandPath(viper.GetString("import.input_dir")),
		OutputDir:           ExpandPath(viper.GetString("export.output_dir")),
		PlatformDomains:     viper.GetStringSlice("classify.platform_domains"),
		GenericProviders:    viper.GetStringSlice("classify.generic_providers"),
		ChunkSize:           viper.GetInt("classify.chunk_size"),
		BodyScanLimit:       viper.GetInt("classify.body_scan_limit"),
		ConfidenceThreshold: viper.GetFloat64("classify.confidence_threshold"),
	}
}

// ExpandPath resolves a user-supplied path: a leading ~ becomes the
// home directory and $VAR references are substituted. Paths needing
// neither pass through unchanged.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
