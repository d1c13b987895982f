package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nmansour/fabflow/internal/categorize"
	"github.com/nmansour/fabflow/internal/classify"
	"github.com/nmansour/fabflow/internal/cli"
	"github.com/nmansour/fabflow/internal/common"
	"github.com/nmansour/fabflow/internal/config"
	"github.com/nmansour/fabflow/internal/engine"
	"github.com/nmansour/fabflow/internal/ingest"
	"github.com/nmansour/fabflow/internal/model"
	"github.com/nmansour/fabflow/internal/normalize"
	"github.com/nmansour/fabflow/internal/reconcile"
	"github.com/nmansour/fabflow/internal/report"
	"github.com/nmansour/fabflow/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <files or globs...>",
		Short: "Analyze bank statements and reconcile balances",
		Long: `Analyze parsed statement exports (JSON) and OFX/QFX bank exports.

Transactions are normalized, categorized and filtered; running balances are
reconstructed from the statements' own balance column and reconciled against
the calculated money flow. A summary report is printed to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("output", "o", "", "Write the full analysis result as JSON to this file")
	cmd.Flags().Bool("save", false, "Persist transactions and the analysis run to the local database")

	_ = viper.BindPFlag("analyze.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("analyze.save", cmd.Flags().Lookup("save"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	settings := config.FromViper()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidConfig, err)
	}

	paths, err := expandStatementArgs(args)
	if err != nil {
		return err
	}

	txns, err := loadTransactions(paths)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		return common.ErrNoTransactions
	}
	slog.Info("loaded transactions", "count", len(txns), "files", len(paths))

	eng, err := buildEngine(settings)
	if err != nil {
		return err
	}
	result := eng.Analyze(txns)

	report.NewRenderer(settings.Currency).Render(os.Stdout, result)

	if output := viper.GetString("analyze.output"); output != "" {
		if err := writeResultJSON(output, result); err != nil {
			return err
		}
		slog.Info(cli.FormatSuccess(fmt.Sprintf("Wrote analysis result to %s", output)))
	}

	if viper.GetBool("analyze.save") {
		if err := saveRun(ctx, settings.DatabasePath, result); err != nil {
			return err
		}
		slog.Info(cli.FormatSuccess("Saved analysis to database"))
	}

	return nil
}

// expandStatementArgs resolves shell-style globs and plain paths into the
// statement file list. Arguments that match nothing are an error rather than
// a silent no-op.
func expandStatementArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid file pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: no files match %q", common.ErrNoStatements, arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// loadTransactions reads every statement file, routing by extension: .ofx and
// .qfx go through the OFX parser, everything else is treated as a statement
// JSON export. A file that fails to load is logged and skipped.
func loadTransactions(paths []string) ([]model.Transaction, error) {
	var jsonPaths []string
	var ofxPaths []string
	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ofx", ".qfx":
			ofxPaths = append(ofxPaths, path)
		default:
			jsonPaths = append(jsonPaths, path)
		}
	}

	txns, loadErrs := ingest.LoadStatementFiles(jsonPaths, len(jsonPaths) > 1)
	for _, err := range loadErrs {
		slog.Warn("skipping unreadable statement file", "error", err)
	}

	parser := ingest.NewOFXParser()
	for _, path := range ofxPaths {
		f, err := os.Open(path)
		if err != nil {
			slog.Warn("skipping unreadable OFX file", "file", path, "error", err)
			continue
		}
		parsed, err := parser.ParseFile(f, filepath.Base(path))
		_ = f.Close()
		if err != nil {
			slog.Warn("skipping unparseable OFX file", "file", path, "error", err)
			continue
		}
		txns = append(txns, parsed...)
	}

	return txns, nil
}

// buildEngine assembles the pipeline from the active settings, loading the
// category rule sidecar when one is configured.
func buildEngine(settings config.Settings) (*engine.Engine, error) {
	rules, defaultCategory, err := config.LoadCategoryRules(settings.CategoriesFile)
	if err != nil {
		return nil, err
	}

	return engine.New(
		normalize.NewDefault(),
		categorize.New(rules, defaultCategory),
		classify.NewClassifier(settings.ClassifierRules()),
		classify.NewPairDetector(settings.PairedAmountTolerance, time.Duration(settings.PairedTimeWindowDays)*24*time.Hour),
		reconcile.New(settings.ReconciliationTolerance, settings.AutoAdjustFloor),
		settings.AutoAdjust,
	), nil
}

func writeResultJSON(path string, result model.AnalysisResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write analysis result: %w", err)
	}
	return nil
}

func saveRun(ctx context.Context, dbPath string, result model.AnalysisResult) error {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveTransactions(ctx, result.Transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	if _, err := store.SaveRun(ctx, result); err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}
	return nil
}
