package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/showroom/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long: `Print the configuration after defaults, config files, the env file,
environment variables, parameters and flags are applied. Secrets are
masked unless --show-secrets is given.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().Bool("show-secrets", false, "print secrets in clear text")

	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	showSecrets, _ := cmd.Flags().GetBool("show-secrets")
	if !showSecrets {
		cfg = cfg.Redacted()
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
