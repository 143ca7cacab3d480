package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/justsurfingit/jobboard/internal/config"
	"github.com/justsurfingit/jobboard/internal/logger"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "jobboard",
	Short: "Job board API server and terminal browser",
	Long: `jobboard serves the job board REST API (recruiter accounts, postings,
applications and identity-provider webhooks) and can browse the public job
list from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
	// Running without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(serveCmd, migrateCmd, browseCmd)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
