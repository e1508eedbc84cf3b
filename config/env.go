package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables for keys without a flat name.
const EnvPrefix = "SHOWROOM"

// flatEnvNames are the environment variables read without EnvPrefix.
var flatEnvNames = map[string]string{
	"openai.api_key":        "OPENAI_API_KEY",
	"images.bucket":         "S3_BUCKET",
	"aws.region":            "AWS_REGION",
	"aws.access_key_id":     "AWS_ACCESS_KEY_ID",
	"aws.secret_access_key": "AWS_SECRET_ACCESS_KEY",
	"logging_enabled":       "LOGGING_ENABLED",
	"use_mock":              "USE_MOCK",
}

// EnvName returns the environment variable that sets key:
// "openai.api_key" is OPENAI_API_KEY, "server.port" is SHOWROOM_SERVER_PORT.
func EnvName(key string) string {
	if name, ok := flatEnvNames[key]; ok {
		return name
	}
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// bindEnv binds every known key to its environment variable.
func bindEnv(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key, EnvName(key))
	}
}

// applyEnvFile reads a dotenv file and layers its values over the defaults.
// Values land below config files and the process environment, and the
// process environment itself is left untouched.
func applyEnvFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}

	dotenv := viper.New()
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		return fmt.Errorf("read env file: %w", err)
	}

	for _, key := range v.AllKeys() {
		name := strings.ToLower(EnvName(key))
		if dotenv.IsSet(name) {
			v.SetDefault(key, dotenv.Get(name))
		}
	}

	return nil
}
