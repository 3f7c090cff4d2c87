// Copyright (c) 2024 RoseLoverX

package tdcache

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config carries the session-scoped parameters handed to the engine at
// initialization. Zero fields fall back to defaults in NewClient.
type Config struct {
	// Telegram app id and hash, from https://my.telegram.org/apps
	APIID   int32  `yaml:"api_id"`
	APIHash string `yaml:"api_hash"`
	// Directory for the engine's databases, default: "tdlib-db"
	DatabaseDirectory string `yaml:"database_directory"`
	// Directory for downloaded files, default: same as DatabaseDirectory
	FilesDirectory string `yaml:"files_directory"`
	// Path to the bookkeeping session file, default: <db dir>/session.json
	SessionFile string `yaml:"session_file"`
	// IETF language tag, default: "en"
	SystemLanguageCode string `yaml:"system_language_code"`
	// Device model, default: "Desktop"
	DeviceModel string `yaml:"device_model"`
	// System version, default: runtime.GOOS + " " + runtime.GOARCH
	SystemVersion string `yaml:"system_version"`
	// App version, default: Version
	ApplicationVersion string `yaml:"application_version"`
	// Connect to the test data centers instead of production
	UseTestDC bool `yaml:"use_test_dc"`

	// Logger for cache diagnostics, default: zap.NewNop()
	Logger *zap.Logger `yaml:"-"`
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}

	return &cfg, nil
}
