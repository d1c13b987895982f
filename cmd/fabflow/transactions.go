package main

import (
	"fmt"
	"os"

	"github.com/nmansour/fabflow/internal/cli"
	"github.com/nmansour/fabflow/internal/config"
	"github.com/nmansour/fabflow/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions saved by previous analyses",
		RunE:  runTransactions,
	}

	cmd.Flags().StringP("month", "m", "", "Only show transactions from this month (format: 2006-01)")
	cmd.Flags().StringP("category", "c", "", "Only show transactions in this category")
	cmd.Flags().Bool("internal", false, "Include the internal-operation flag column")

	_ = viper.BindPFlag("transactions.month", cmd.Flags().Lookup("month"))
	_ = viper.BindPFlag("transactions.category", cmd.Flags().Lookup("category"))
	_ = viper.BindPFlag("transactions.internal", cmd.Flags().Lookup("internal"))

	return cmd
}

func runTransactions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	settings := config.FromViper()
	store, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	filter := storage.TransactionFilter{
		Month:    viper.GetString("transactions.month"),
		Category: viper.GetString("transactions.category"),
	}

	txns, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found. Run 'fabflow analyze --save' first, or loosen the filters."))
		return nil
	}

	showInternal := viper.GetBool("transactions.internal")

	fmt.Fprintln(os.Stdout, cli.FormatTitle(fmt.Sprintf("TRANSACTIONS (%d)", len(txns))))
	for _, t := range txns {
		line := fmt.Sprintf("%s  %8.2f %s  %-24s  %s",
			t.Date.Format("2006-01-02"), t.Amount, t.Type, t.Category, t.Merchant)
		if showInternal && t.PairedInternal {
			line += "  " + cli.SubtleStyle.Render("[paired]")
		}
		fmt.Fprintln(os.Stdout, line)
	}

	return nil
}
