package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"trivia-quiz/internal/config"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	baseURL    string
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()

	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	opts := &options{}
	cmd := &cobra.Command{
		Use:          "trivia",
		Short:        "Timed trivia quizzes from the Open Trivia DB",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "trivia API base URL (overrides config)")
	cmd.AddCommand(newPlayCmd(opts))
	cmd.AddCommand(newCategoriesCmd(opts))
	cmd.AddCommand(newCountCmd(opts))
	return cmd
}

// load reads the config file and applies the flag overrides.
func (o *options) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.baseURL != "" {
		cfg.API.BaseURL = o.baseURL
	}
	return cfg, nil
}
