package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nmansour/fabflow/internal/cli"
	"github.com/nmansour/fabflow/internal/common"
	"github.com/nmansour/fabflow/internal/config"
	"github.com/nmansour/fabflow/internal/report"
	"github.com/nmansour/fabflow/internal/storage"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Re-render the most recent saved analysis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			settings := config.FromViper()
			store, err := storage.NewSQLiteStorage(settings.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			result, err := store.GetLatestRun(ctx)
			if errors.Is(err, common.ErrNotFound) {
				fmt.Println(cli.FormatWarning("No saved analysis yet. Run 'fabflow analyze --save' first."))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Analysis from %s (%d transactions)",
				result.GeneratedAt.Format("2006-01-02 15:04"), result.TotalTransactions)))
			fmt.Println()
			report.NewRenderer(settings.Currency).Render(os.Stdout, *result)
			return nil
		},
	}
}
