package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a dotenv file with the required settings",
	Long: `Prompt for the completion API key and the image bucket, then write
them to the env file (--env-file, default .env) read by the other
commands.`,
	Annotations: map[string]string{skipConfig: ""},
	RunE:        runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// envSettings are the values init collects.
type envSettings struct {
	APIKey  string
	Bucket  string
	Region  string
	UseMock bool
}

func runInit(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")

	if _, err := os.Stat(envFile); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite it", envFile),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	apiKeyPrompt := promptui.Prompt{
		Label:    "OpenAI API key",
		Mask:     '*',
		Validate: required("API key"),
	}
	apiKey, err := apiKeyPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	bucketPrompt := promptui.Prompt{
		Label:    "S3 bucket",
		Validate: required("bucket"),
	}
	bucket, err := bucketPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	regionPrompt := promptui.Prompt{
		Label:    "AWS region",
		Default:  "us-east-1",
		Validate: required("region"),
	}
	region, err := regionPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	useMock := false
	mockPrompt := promptui.Prompt{
		Label:     "Mock completion responses",
		IsConfirm: true,
	}
	if _, promptErr := mockPrompt.Run(); promptErr == nil {
		useMock = true
	}

	settings := envSettings{
		APIKey:  strings.TrimSpace(apiKey),
		Bucket:  strings.TrimSpace(bucket),
		Region:  strings.TrimSpace(region),
		UseMock: useMock,
	}
	if err := writeEnvFile(envFile, settings); err != nil {
		return err
	}

	fmt.Printf("Settings written to %s\n", envFile)
	return nil
}

// writeEnvFile stores settings under the flat variable names the config
// package reads.
func writeEnvFile(path string, s envSettings) error {
	v := viper.New()
	v.SetConfigType("env")
	v.Set("OPENAI_API_KEY", s.APIKey)
	v.Set("S3_BUCKET", s.Bucket)
	v.Set("AWS_REGION", s.Region)
	v.Set("USE_MOCK", fmt.Sprintf("%t", s.UseMock))

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	return os.Chmod(path, 0o600)
}

func required(name string) promptui.ValidateFunc {
	return func(input string) error {
		if strings.TrimSpace(input) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// handlePromptError handles promptui errors.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
