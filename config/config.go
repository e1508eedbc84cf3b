package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/showroom"
	showroomhttp "github.com/sagarc03/showroom/http"
)

// ErrMissingSetting is returned when a required setting resolves to an empty value.
var ErrMissingSetting = errors.New("config: missing required setting")

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for showroom.
type Config struct {
	Env     string                  `mapstructure:"env" yaml:"env" validate:"omitempty,oneof=dev development prod production"`
	Server  ServerConfig            `mapstructure:"server" yaml:"server"`
	OpenAI  OpenAIConfig            `mapstructure:"openai" yaml:"openai"`
	AWS     AWSConfig               `mapstructure:"aws" yaml:"aws"`
	Images  ImagesConfig            `mapstructure:"images" yaml:"images"`
	Assets  AssetsConfig            `mapstructure:"assets" yaml:"assets"`
	CORS    showroomhttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log     LogConfig               `mapstructure:"log" yaml:"log"`
	Metrics MetricsConfig           `mapstructure:"metrics" yaml:"metrics"`
	SSM     SSMConfig               `mapstructure:"ssm" yaml:"ssm"`

	// UseMock and LoggingEnabled are true only for the literal string "true".
	UseMock        bool `mapstructure:"-" yaml:"use_mock"`
	LoggingEnabled bool `mapstructure:"-" yaml:"logging_enabled"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host   string `mapstructure:"host" yaml:"host"`
	Port   int    `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	Assets string `mapstructure:"assets" yaml:"assets" validate:"required,oneof=spa info"`
}

// OpenAIConfig holds the completion upstream settings.
type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL   string `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`
	Model     string `mapstructure:"model" yaml:"model" validate:"required"`
	MaxTokens int    `mapstructure:"max_tokens" yaml:"max_tokens" validate:"min=1"`
}

// AWSConfig holds the region and optional static credentials. Endpoint and
// UsePathStyle point the S3 client at an S3-compatible service.
type AWSConfig struct {
	Region          string `mapstructure:"region" yaml:"region"`
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`
	Endpoint        string `mapstructure:"endpoint" yaml:"endpoint" validate:"omitempty,url"`
	UsePathStyle    bool   `mapstructure:"use_path_style" yaml:"use_path_style"`
}

// ImagesConfig selects the image listing backend.
type ImagesConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend" validate:"required,oneof=s3 local"`
	Bucket  string `mapstructure:"bucket" yaml:"bucket"`
	Dir     string `mapstructure:"dir" yaml:"dir"`
}

// AssetsConfig holds the static build location.
type AssetsConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// SSMConfig holds parameter store settings. File, when set, replaces the
// remote store with a local JSON parameter file.
type SSMConfig struct {
	App  string `mapstructure:"app" yaml:"app" validate:"required"`
	File string `mapstructure:"file" yaml:"file"`
}

// AssetMode returns the parsed terminal policy.
func (c *Config) AssetMode() showroom.AssetMode {
	return showroom.AssetMode(c.Server.Assets)
}

// ImageBackend returns the parsed image backend.
func (c *Config) ImageBackend() showroom.ImageBackend {
	return showroom.ImageBackend(c.Images.Backend)
}

// Addr is the listen address built from host and port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

const mask = "********"

// Redacted returns a copy of the config with secrets masked.
func (c *Config) Redacted() *Config {
	cp := *c
	cp.CORS.AllowedOrigins = append([]string(nil), c.CORS.AllowedOrigins...)
	if cp.OpenAI.APIKey != "" {
		cp.OpenAI.APIKey = mask
	}
	if cp.AWS.AccessKeyID != "" {
		cp.AWS.AccessKeyID = mask
	}
	if cp.AWS.SecretAccessKey != "" {
		cp.AWS.SecretAccessKey = mask
	}
	return &cp
}

// Options controls where settings are read from.
type Options struct {
	// ConfigFiles are YAML files merged left to right. When empty, an
	// optional ./config.yaml is read.
	ConfigFiles []string
	// EnvFile is a dotenv file. A missing file is not an error.
	EnvFile string
	// Flags are bound when explicitly set on the command line.
	Flags *pflag.FlagSet
	// Defaults override the built-in defaults (the Lambda entry uses this
	// to switch the asset policy to info).
	Defaults map[string]any
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":      "server.port",
	"host":      "server.host",
	"assets":    "server.assets",
	"mock":      "use_mock",
	"app":       "ssm.app",
	"log-level": "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey, ok := flagToViperKey[f.Name]
		if !ok {
			return
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// flagChanged reports whether the flag bound to viperKey was set on the command line.
func flagChanged(flags *pflag.FlagSet, viperKey string) bool {
	if flags == nil {
		return false
	}
	for name, key := range flagToViperKey {
		if key != viperKey {
			continue
		}
		if f := flags.Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.assets", string(showroom.ModeSPA))

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4-turbo")
	v.SetDefault("openai.max_tokens", 150)

	v.SetDefault("aws.region", "")
	v.SetDefault("aws.access_key_id", "")
	v.SetDefault("aws.secret_access_key", "")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("aws.use_path_style", false)

	v.SetDefault("images.backend", string(showroom.BackendS3))
	v.SetDefault("images.bucket", "")
	v.SetDefault("images.dir", "images")

	v.SetDefault("assets.dir", "vite-frontend/dist")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:4173"})
	v.SetDefault("cors.allow_credentials", false)

	v.SetDefault("log.level", "")
	v.SetDefault("metrics.enabled", false)

	v.SetDefault("ssm.app", "showroom")
	v.SetDefault("ssm.file", "")

	v.SetDefault("use_mock", "false")
	v.SetDefault("logging_enabled", "false")
}

// newViper builds a viper instance with every non-parameter source applied.
// Order of precedence (highest to lowest): flags > env > config files > .env file > defaults
func newViper(opts Options) (*viper.Viper, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)
	for key, value := range opts.Defaults {
		v.SetDefault(key, value)
	}

	// 2. Read the dotenv file
	if err := applyEnvFile(v, opts.EnvFile); err != nil {
		return nil, err
	}

	// 3. Read config files
	if len(opts.ConfigFiles) > 0 {
		v.SetConfigFile(opts.ConfigFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", opts.ConfigFiles[0], "err", err)
		}

		for _, cf := range opts.ConfigFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 4. Bind environment variables
	bindEnv(v)

	// 5. Bind flags (if provided)
	if opts.Flags != nil {
		bindFlags(v, opts.Flags)
	}

	return v, nil
}

// decode unmarshals the viper state into a Config. Validation happens after
// parameters are resolved.
func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.UseMock = isTrue(v.GetString("use_mock"))
	cfg.LoggingEnabled = isTrue(v.GetString("logging_enabled"))

	return &cfg, nil
}

func isTrue(s string) bool {
	return s == "true"
}

// validate checks struct tags and then required settings. name renders the
// viper key of a missing setting the way the active source spells it.
func validate(cfg *Config, name func(key string) string) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	for _, key := range requiredKeys(cfg) {
		if strings.TrimSpace(lookupKey(cfg, key)) == "" {
			return fmt.Errorf("%w %s", ErrMissingSetting, name(key))
		}
	}

	return nil
}

// requiredKeys lists the settings that must be non-empty for cfg's backend.
func requiredKeys(cfg *Config) []string {
	keys := []string{"openai.api_key"}

	switch cfg.ImageBackend() {
	case showroom.BackendS3:
		keys = append(keys, "images.bucket", "aws.region")
	case showroom.BackendLocal:
		keys = append(keys, "images.dir")
	}

	return keys
}

func lookupKey(cfg *Config, key string) string {
	switch key {
	case "openai.api_key":
		return cfg.OpenAI.APIKey
	case "images.bucket":
		return cfg.Images.Bucket
	case "aws.region":
		return cfg.AWS.Region
	case "images.dir":
		return cfg.Images.Dir
	default:
		return ""
	}
}

// logResolved reports where assets are served from when logging is enabled.
// Secret values are never logged.
func logResolved(cfg *Config) {
	if !cfg.LoggingEnabled {
		return
	}
	if cfg.AssetMode() == showroom.ModeSPA {
		slog.Info("serving static assets", "dir", cfg.Assets.Dir)
	}
}
