package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sagarc03/showroom/paramstore"
)

// Provider resolves a validated configuration from one source.
type Provider interface {
	Load(ctx context.Context) (*Config, error)
}

// Configuration sources accepted by NewProvider.
const (
	SourceEnv = "env"
	SourceSSM = "ssm"
)

// NewProvider returns the provider for source.
func NewProvider(source string, opts Options) (Provider, error) {
	switch source {
	case SourceEnv, "":
		return &EnvProvider{Options: opts}, nil
	case SourceSSM:
		return &ParameterProvider{Options: opts}, nil
	default:
		return nil, fmt.Errorf("invalid config source: %s (valid sources: env, ssm)", source)
	}
}

// Load resolves configuration from the environment. It is shorthand for an
// EnvProvider with opts.
func Load(ctx context.Context, opts Options) (*Config, error) {
	return (&EnvProvider{Options: opts}).Load(ctx)
}

// EnvProvider reads every setting from defaults, the dotenv file, config
// files, the process environment and flags.
type EnvProvider struct {
	Options Options
}

func (p *EnvProvider) Load(_ context.Context) (*Config, error) {
	v, err := newViper(p.Options)
	if err != nil {
		return nil, err
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg, EnvName); err != nil {
		return nil, err
	}

	logResolved(cfg)
	return cfg, nil
}

// parameter is one application setting fetched from the parameter store.
type parameter struct {
	name    string
	key     string
	decrypt bool
}

// parameters are resolved under "/<ssm.app>/". Credential-like values are
// fetched with decryption.
var parameters = []parameter{
	{name: "openai", key: "openai.api_key", decrypt: true},
	{name: "s3-bucket", key: "images.bucket"},
	{name: "aws-region", key: "aws.region"},
	{name: "aws-access-key-id", key: "aws.access_key_id", decrypt: true},
	{name: "aws-secret-access-key", key: "aws.secret_access_key", decrypt: true},
	{name: "logging-enabled", key: "logging_enabled"},
	{name: "use-mock", key: "use_mock"},
}

// ParameterProvider reads the non-secret settings like EnvProvider and then
// resolves the application settings from a parameter store. Parameters that
// do not exist keep the value from the other sources, and explicitly set
// flags win over the store.
type ParameterProvider struct {
	Options Options
	// Store is used when set. Otherwise a local parameter file (ssm.file) or
	// AWS SSM is opened.
	Store paramstore.Store
}

func (p *ParameterProvider) Load(ctx context.Context) (*Config, error) {
	v, err := newViper(p.Options)
	if err != nil {
		return nil, err
	}

	base, err := decode(v)
	if err != nil {
		return nil, err
	}

	store := p.Store
	if store == nil {
		store, err = openStore(ctx, base)
		if err != nil {
			return nil, err
		}
	}

	app := base.SSM.App
	var resolved []string
	for _, param := range parameters {
		if flagChanged(p.Options.Flags, param.key) {
			continue
		}

		path := paramstore.Path(app, param.name)
		value, err := store.Lookup(ctx, path, param.decrypt)
		if errors.Is(err, paramstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve parameter: %w", err)
		}
		v.Set(param.key, value)
		resolved = append(resolved, path)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg, func(key string) string { return parameterPath(app, key) }); err != nil {
		return nil, err
	}

	if cfg.LoggingEnabled {
		for _, name := range resolved {
			slog.Info("resolved parameter", "name", name)
		}
	}
	logResolved(cfg)

	return cfg, nil
}

// parameterPath names the parameter that sets key, falling back to the
// environment name for settings not held in the store.
func parameterPath(app, key string) string {
	for _, param := range parameters {
		if param.key == key {
			return paramstore.Path(app, param.name)
		}
	}
	return EnvName(key)
}

func openStore(ctx context.Context, cfg *Config) (paramstore.Store, error) {
	if cfg.SSM.File != "" {
		store, err := paramstore.LoadFile(cfg.SSM.File)
		if err != nil {
			return nil, fmt.Errorf("open parameter file: %w", err)
		}
		return store, nil
	}

	store, err := paramstore.NewSSMStoreFromDefaults(ctx, cfg.AWS.Region)
	if err != nil {
		return nil, fmt.Errorf("open parameter store: %w", err)
	}
	return store, nil
}
