// Package config reads command defaults from the environment. A .env file
// in the working directory is loaded first when present.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvPrefsFile = "DIALOGUETOOLS_PREFS"
	EnvVerbose   = "DIALOGUETOOLS_VERBOSE"
	EnvFormat    = "DIALOGUETOOLS_FORMAT"
)

// Output formats.
const (
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
)

// Config holds the defaults applied to command flags that were not set.
type Config struct {
	PrefsFile string
	Verbose   bool
	Format    string
}

// Load reads .env (if any) and then the process environment. Variables
// already set in the process take precedence over .env.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file.
func LoadFile(filename string) (*Config, error) {
	if err := godotenv.Load(filename); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		common.LogDebug(common.InfoEnvironmentFileMissing)
	}

	return &Config{
		PrefsFile: getEnv(EnvPrefsFile, ""),
		Verbose:   getEnvBool(EnvVerbose, false),
		Format:    strings.ToLower(getEnv(EnvFormat, "")),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}
