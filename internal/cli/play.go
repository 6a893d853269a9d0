package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"trivia-quiz/internal/console"
	"trivia-quiz/internal/tui"
)

func newPlayCmd(opts *options) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a timed quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts, plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "line-based prompts instead of the full-screen UI")
	return cmd
}

func runPlay(cmd *cobra.Command, opts *options, plain bool) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}

	// The full-screen UI owns the terminal, so logs only go to a file there.
	var fallback io.Writer = io.Discard
	if plain {
		fallback = os.Stderr
	}
	closeLog, err := setupLogging(cfg, fallback)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service, release := buildService(ctx, cfg)
	defer release()

	log.Info().Str("base_url", cfg.API.BaseURL).Bool("plain", plain).Msg("starting quiz")
	if plain {
		runner := console.NewRunner(service, cmd.InOrStdin(), cmd.OutOrStdout(),
			console.WithDefaultAmount(cfg.Quiz.DefaultAmount))
		return runner.Run(ctx)
	}
	return tui.Run(ctx, service, tui.Options{DefaultAmount: cfg.Quiz.DefaultAmount})
}

// commandContext returns the command's context, or Background when run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
