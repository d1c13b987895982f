// Package config loads application settings and user-editable rule tables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nmansour/fabflow/internal/classify"
	"github.com/nmansour/fabflow/internal/reconcile"
	"github.com/spf13/viper"
)

// Settings holds every tunable option. All options have defaults; none are
// required.
type Settings struct {
	Currency                  string
	CategoriesFile            string
	DatabasePath              string
	InternalKeywords          []string
	TransferPatterns          []string
	TransferExcludes          []string
	SmallTransactionThreshold float64
	PairedAmountTolerance     float64
	PairedTimeWindowDays      int
	ReconciliationTolerance   float64
	AutoAdjustFloor           float64
	AutoAdjust                bool
}

// SetDefaults registers every option's default with viper. Call once from
// the root command before reading the config file.
func SetDefaults() {
	viper.SetDefault("currency", "AED")
	viper.SetDefault("categories_file", "")
	viper.SetDefault("database.path", defaultDatabasePath())
	viper.SetDefault("analysis.small_transaction_threshold", classify.DefaultSmallCreditMax)
	viper.SetDefault("analysis.paired_amount_tolerance", classify.DefaultPairAmountTolerance)
	viper.SetDefault("analysis.paired_time_window_days", 90)
	viper.SetDefault("analysis.reconciliation_tolerance", reconcile.DefaultTolerance)
	viper.SetDefault("analysis.auto_adjust_floor", reconcile.DefaultAutoAdjustFloor)
	viper.SetDefault("analysis.auto_adjust", true)
}

// FromViper materializes the active settings.
func FromViper() Settings {
	return Settings{
		Currency:                  viper.GetString("currency"),
		CategoriesFile:            viper.GetString("categories_file"),
		DatabasePath:              viper.GetString("database.path"),
		SmallTransactionThreshold: viper.GetFloat64("analysis.small_transaction_threshold"),
		PairedAmountTolerance:     viper.GetFloat64("analysis.paired_amount_tolerance"),
		PairedTimeWindowDays:      viper.GetInt("analysis.paired_time_window_days"),
		ReconciliationTolerance:   viper.GetFloat64("analysis.reconciliation_tolerance"),
		AutoAdjustFloor:           viper.GetFloat64("analysis.auto_adjust_floor"),
		AutoAdjust:                viper.GetBool("analysis.auto_adjust"),
		InternalKeywords:          viper.GetStringSlice("rules.internal_keywords"),
		TransferPatterns:          viper.GetStringSlice("rules.transfer_patterns"),
		TransferExcludes:          viper.GetStringSlice("rules.transfer_excludes"),
	}
}

// ClassifierRules builds the internal-operation tables, applying any
// user-configured overrides on top of the shipped lists.
func (s Settings) ClassifierRules() classify.Rules {
	rules := classify.DefaultRules()
	rules.SmallCreditMax = s.SmallTransactionThreshold
	if len(s.InternalKeywords) > 0 {
		rules.Keywords = s.InternalKeywords
	}
	if len(s.TransferPatterns) > 0 {
		rules.TransferPatterns = s.TransferPatterns
	}
	if len(s.TransferExcludes) > 0 {
		rules.TransferExcludes = s.TransferExcludes
	}
	return rules
}

// Validate rejects settings no analysis could run under.
func (s Settings) Validate() error {
	if s.SmallTransactionThreshold < 0 {
		return fmt.Errorf("small transaction threshold must not be negative")
	}
	if s.PairedAmountTolerance < 0 {
		return fmt.Errorf("paired amount tolerance must not be negative")
	}
	if s.PairedTimeWindowDays <= 0 {
		return fmt.Errorf("paired time window must be positive")
	}
	if s.ReconciliationTolerance < 0 {
		return fmt.Errorf("reconciliation tolerance must not be negative")
	}
	return nil
}

func defaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fabflow.db"
	}
	return filepath.Join(home, ".local", "share", "fabflow", "fabflow.db")
}
