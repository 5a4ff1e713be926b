package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/memedash/internal/cli"
	"github.com/okian/memedash/pkg/logger"
)

var config = &cli.Config{} //nolint:gochecknoglobals // bound to persistent flags

var rootCmd = &cobra.Command{
	Use:   "memedash",
	Short: "Inspect meme coin scores from the terminal",
	Long: `memedash reads precomputed meme coin scores from the score API and prints
the dashboard views as terminal tables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := logger.InitWithWriter(os.Stderr, logger.FormatText); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		level := "warn"
		if config.Verbose {
			level = "debug"
		}
		return logger.SetLevelString(level)
	},
}

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Print summary, distribution, averages and rankings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cli.Scores(cmd.Context(), config, cmd.OutOrStdout())
	},
}

var coinCmd = &cobra.Command{
	Use:   "coin <identifier>",
	Short: "Print the detail view of one coin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Coin(cmd.Context(), config, args[0], cmd.OutOrStdout())
	},
}

func init() { //nolint:gochecknoinits // cobra command wiring
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&config.BaseURL, "url", cli.DefaultBaseURL, "Base URL of the score API")
	flags.DurationVar(&config.Timeout, "timeout", cli.DefaultTimeout, "HTTP request timeout")
	flags.IntVar(&config.TopN, "top", cli.DefaultTopN, "Number of entries in each ranking")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(scoresCmd, coinCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "memedash: %v\n", err)
		stop()
		os.Exit(1) //nolint:gocritic // stop is called explicitly above
	}
}
