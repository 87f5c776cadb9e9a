package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/wordbridge/internal/archive"
	"codeberg.org/snonux/wordbridge/internal/cli"
	"codeberg.org/snonux/wordbridge/internal/models"
	"codeberg.org/snonux/wordbridge/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, processor.ErrInterrupted) {
			fmt.Fprintln(os.Stderr, "Interrupted.")
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --archive flag
	if flags.Archive {
		if flags.Output == "" {
			return fmt.Errorf("--archive requires --output to locate the run to archive")
		}
		if err := archive.ArchiveRun(flags.Output); err != nil {
			return fmt.Errorf("failed to archive run: %w", err)
		}
		return nil
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListTranslationModels()
	}

	if flags.Input == "" {
		return fmt.Errorf("--input is required")
	}
	if flags.Output == "" {
		return fmt.Errorf("--output is required")
	}

	// Create processor
	proc, err := processor.NewProcessor(flags)
	if err != nil {
		return err
	}

	// Ctrl-C and SIGTERM stop the run after the current sentence
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return proc.Run(ctx)
}
