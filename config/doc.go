// Package config provides configuration loading and validation for showroom.
//
// Settings come from a dotenv file, YAML configuration files, environment
// variables and CLI flags, merged by viper and validated with
// go-playground/validator. The application settings (API key, bucket,
// region, credentials, mock and logging flags) can instead be resolved from
// AWS SSM Parameter Store.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. The dotenv file (default .env)
//  3. Configuration file(s) - multiple files merged left-to-right
//  4. Environment variables
//  5. CLI flags
//
// With the ssm source, parameters found in the store override 1-4.
//
// # Usage
//
//	provider, err := config.NewProvider(config.SourceEnv, config.Options{
//	    EnvFile: ".env",
//	    Flags:   cmd.Flags(),
//	})
//	if err != nil {
//	    return err
//	}
//	cfg, err := provider.Load(ctx)
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
// # Environment Variables
//
// The application settings use flat names:
//   - openai.api_key → OPENAI_API_KEY
//   - images.bucket → S3_BUCKET
//   - aws.region → AWS_REGION
//   - aws.access_key_id → AWS_ACCESS_KEY_ID
//   - aws.secret_access_key → AWS_SECRET_ACCESS_KEY
//   - use_mock → USE_MOCK
//   - logging_enabled → LOGGING_ENABLED
//
// Every other key uses the SHOWROOM_ prefix, for example
// server.port → SHOWROOM_SERVER_PORT and cors.allowed_origins →
// SHOWROOM_CORS_ALLOWED_ORIGINS (comma separated).
//
// USE_MOCK and LOGGING_ENABLED are enabled only by the exact string "true".
//
// # Parameter Store
//
// The ssm source reads /<ssm.app>/openai, /<ssm.app>/s3-bucket,
// /<ssm.app>/aws-region, /<ssm.app>/aws-access-key-id,
// /<ssm.app>/aws-secret-access-key, /<ssm.app>/logging-enabled and
// /<ssm.app>/use-mock. The API key and credentials are fetched with
// decryption. Setting ssm.file reads the same names from a local JSON file.
//
// # Validation
//
// The API key is always required. The s3 image backend also requires a
// bucket and region, the local backend an image directory. A missing value
// fails with ErrMissingSetting naming the variable or parameter to set.
package config
