package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ConfigPathEnvVar names the environment variable consulted when no --config flag is given.
const ConfigPathEnvVar = "JSMON_CONFIG_PATH"

const maxConfigFileSize = 10 * 1024 * 1024

// GetConfigPath determines the configuration file path.
// Priority:
// 1. --config command-line flag
// 2. JSMON_CONFIG_PATH environment variable
// 3. config.yaml in the current working directory
// 4. config.json in the current working directory
// An empty result means no config file was found.
func GetConfigPath(flagPath string) string {
	if flagPath != "" {
		if isRegularFile(flagPath) {
			return flagPath
		}
		return ""
	}

	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" && isRegularFile(envPath) {
		return envPath
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.json"} {
		if path := filepath.Join(cwd, name); isRegularFile(path) {
			return path
		}
	}
	return ""
}

// LoadGlobalConfig reads the config file found by GetConfigPath over the defaults, then
// applies JSMON_* overrides from the environment or a .env file. A missing file is fine unless it was named
// explicitly. Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	path := GetConfigPath(providedPath)
	switch {
	case path == "" && providedPath != "":
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	case path != "":
		data, err := common.NewFileManager(logger).ReadFile(path, maxConfigFileSize)
		if err != nil {
			return nil, common.WrapError(err, "failed to load config file content")
		}
		if err := decodeConfig(data, path, cfg); err != nil {
			return nil, common.WrapErrorf(err, "failed to parse config file '%s'", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded configuration file")
	}

	lookup, err := EnvLookup(path, logger)
	if err != nil {
		return nil, err
	}
	ApplyEnvOverrides(cfg, lookup)
	return cfg, nil
}

// decodeConfig picks the decoder by extension: YAML for .yaml/.yml, JSON otherwise.
func decodeConfig(data []byte, path string, cfg *GlobalConfig) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
