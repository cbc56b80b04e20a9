package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/rewind/internal/app"
	"github.com/iammorganparry/rewind/internal/config"
)

type appKey struct{}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rewind",
		Short:         "rewind - a searchable timeline of everything you captured",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a, err := app.New(cfg, app.NewLogger(cfg.LogLevel, os.Stderr))
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return appFrom(cmd).Close()
		},
	}

	root.AddCommand(
		newAddCmd(),
		newEditCmd(),
		newRmCmd(),
		newLsCmd(),
		newExportCmd(),
		newImportCmd(),
		newStatsCmd(),
		newInsightsCmd(),
		newTuiCmd(),
	)
	return root
}

func appFrom(cmd *cobra.Command) *app.App {
	return cmd.Context().Value(appKey{}).(*app.App)
}
