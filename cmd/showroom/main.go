package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/showroom/config"
	"github.com/sagarc03/showroom/logging"
)

var version = "dev"

// skipConfig marks commands that run without a resolved configuration.
const skipConfig = "skip-config"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "showroom",
	Short:   "Backend for the vehicle showroom frontend",
	Long: `Showroom serves the vehicle showroom single page application,
relays chat prompts to an OpenAI-compatible completion API, and lists
vehicle images stored in S3 or a local directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := cmd.Annotations[skipConfig]; ok {
			logging.Setup("", "")
			return nil
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logging.Setup(cfg.Env, cfg.Log.Level)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file paths, merged in order (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file with settings")
	rootCmd.PersistentFlags().String("source", config.SourceEnv, "config source: env, ssm (env: SHOWROOM_CONFIG_SOURCE)")
	rootCmd.PersistentFlags().String("app", "", "parameter store application name (default: showroom, env: SHOWROOM_SSM_APP)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: SHOWROOM_LOG_LEVEL)")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFiles, _ := cmd.Flags().GetStringSlice("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	source, _ := cmd.Flags().GetString("source")
	if !cmd.Flags().Changed("source") {
		if s := os.Getenv("SHOWROOM_CONFIG_SOURCE"); s != "" {
			source = s
		}
	}

	provider, err := config.NewProvider(source, config.Options{
		ConfigFiles: configFiles,
		EnvFile:     envFile,
		Flags:       cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}

	cfg, err := provider.Load(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
