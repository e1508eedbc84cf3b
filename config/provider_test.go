package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/showroom/config"
	"github.com/sagarc03/showroom/paramstore"
)

type SpyStore struct {
	mock.Mock
}

func (s *SpyStore) Lookup(ctx context.Context, name string, decrypt bool) (string, error) {
	args := s.Called(ctx, name, decrypt)
	return args.String(0), args.Error(1)
}

func TestNewProvider(t *testing.T) {
	p, err := config.NewProvider("env", config.Options{})
	require.NoError(t, err)
	assert.IsType(t, &config.EnvProvider{}, p)

	p, err = config.NewProvider("", config.Options{})
	require.NoError(t, err)
	assert.IsType(t, &config.EnvProvider{}, p)

	p, err = config.NewProvider("ssm", config.Options{})
	require.NoError(t, err)
	assert.IsType(t, &config.ParameterProvider{}, p)

	_, err = config.NewProvider("vault", config.Options{})
	assert.ErrorContains(t, err, "invalid config source")
}

func TestParameterProvider_Load(t *testing.T) {
	clearEnv(t)

	store := paramstore.NewMapStore(map[string]string{
		"/showroom/openai":                "sk-ssm",
		"/showroom/s3-bucket":             "ssm-bucket",
		"/showroom/aws-region":            "eu-west-3",
		"/showroom/aws-access-key-id":     "AKIDSSM",
		"/showroom/aws-secret-access-key": "secret-ssm",
		"/showroom/logging-enabled":       "true",
		"/showroom/use-mock":              "true",
	})

	cfg, err := (&config.ParameterProvider{Store: store}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sk-ssm", cfg.OpenAI.APIKey)
	assert.Equal(t, "ssm-bucket", cfg.Images.Bucket)
	assert.Equal(t, "eu-west-3", cfg.AWS.Region)
	assert.Equal(t, "AKIDSSM", cfg.AWS.AccessKeyID)
	assert.Equal(t, "secret-ssm", cfg.AWS.SecretAccessKey)
	assert.True(t, cfg.LoggingEnabled)
	assert.True(t, cfg.UseMock)
}

func TestParameterProvider_DecryptsCredentials(t *testing.T) {
	clearEnv(t)

	store := new(SpyStore)
	store.On("Lookup", mock.Anything, "/garage/openai", true).Return("sk", nil)
	store.On("Lookup", mock.Anything, "/garage/s3-bucket", false).Return("b", nil)
	store.On("Lookup", mock.Anything, "/garage/aws-region", false).Return("r", nil)
	store.On("Lookup", mock.Anything, "/garage/aws-access-key-id", true).Return("", paramstore.ErrNotFound)
	store.On("Lookup", mock.Anything, "/garage/aws-secret-access-key", true).Return("", paramstore.ErrNotFound)
	store.On("Lookup", mock.Anything, "/garage/logging-enabled", false).Return("", paramstore.ErrNotFound)
	store.On("Lookup", mock.Anything, "/garage/use-mock", false).Return("false", nil)

	t.Setenv("SHOWROOM_SSM_APP", "garage")

	cfg, err := (&config.ParameterProvider{Store: store}).Load(context.Background())
	require.NoError(t, err)

	store.AssertExpectations(t)
	assert.Empty(t, cfg.AWS.AccessKeyID)
	assert.Empty(t, cfg.AWS.SecretAccessKey)
	assert.False(t, cfg.LoggingEnabled)
	assert.False(t, cfg.UseMock)
}

func TestParameterProvider_MissingRequired(t *testing.T) {
	clearEnv(t)

	store := paramstore.NewMapStore(map[string]string{
		"/showroom/openai":     "sk-ssm",
		"/showroom/aws-region": "eu-west-3",
	})

	_, err := (&config.ParameterProvider{Store: store}).Load(context.Background())
	require.ErrorIs(t, err, config.ErrMissingSetting)
	assert.EqualError(t, err, "config: missing required setting /showroom/s3-bucket")
}

func TestParameterProvider_StoreError(t *testing.T) {
	clearEnv(t)

	denied := errors.New("access denied")
	store := new(SpyStore)
	store.On("Lookup", mock.Anything, "/showroom/openai", true).Return("", denied)

	_, err := (&config.ParameterProvider{Store: store}).Load(context.Background())
	require.ErrorIs(t, err, denied)
	assert.Contains(t, err.Error(), "resolve parameter")
}

func TestParameterProvider_MockFlagWins(t *testing.T) {
	clearEnv(t)

	store := paramstore.NewMapStore(map[string]string{
		"/showroom/openai":     "sk-ssm",
		"/showroom/s3-bucket":  "b",
		"/showroom/aws-region": "r",
		"/showroom/use-mock":   "false",
	})

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.Bool("mock", false, "")
	require.NoError(t, flags.Parse([]string{"--mock"}))

	cfg, err := (&config.ParameterProvider{Store: store, Options: config.Options{Flags: flags}}).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.UseMock)
}

func TestParameterProvider_ParameterFile(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "params.json", `[
		{"name": "/showroom/openai", "value": "sk-file"},
		{"name": "/showroom/s3-bucket", "value": "file-bucket"},
		{"name": "/showroom/aws-region", "value": "us-west-2"}
	]`)
	t.Setenv("SHOWROOM_SSM_FILE", path)

	provider, err := config.NewProvider(config.SourceSSM, config.Options{})
	require.NoError(t, err)

	cfg, err := provider.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-file", cfg.OpenAI.APIKey)
	assert.Equal(t, "file-bucket", cfg.Images.Bucket)
	assert.Equal(t, "us-west-2", cfg.AWS.Region)
}
