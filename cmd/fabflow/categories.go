package main

import (
	"fmt"
	"os"

	"github.com/nmansour/fabflow/internal/cli"
	"github.com/nmansour/fabflow/internal/config"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the active merchant categorization rules",
		Long: `Show the keyword-to-category rules used during analysis, in match order.

Rules are scanned top to bottom and the first match wins, so the order shown
here is the order that applies. Use --init to write the shipped rules to a
file you can edit, then point categories_file at it in your config.`,
		RunE: runCategories,
	}

	cmd.Flags().String("init", "", "Write the default rules to this file and exit")

	return cmd
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if initPath, _ := cmd.Flags().GetString("init"); initPath != "" {
		if err := config.WriteDefaultCategoryRules(initPath); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote default category rules to %s", initPath)))
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Set categories_file: %s in your config to use them.", initPath)))
		return nil
	}

	settings := config.FromViper()
	rules, defaultCategory, err := config.LoadCategoryRules(settings.CategoriesFile)
	if err != nil {
		return err
	}

	source := "built-in defaults"
	if settings.CategoriesFile != "" {
		source = settings.CategoriesFile
	}
	fmt.Fprintln(os.Stdout, cli.FormatTitle(fmt.Sprintf("CATEGORY RULES (%s)", source)))
	for i, rule := range rules {
		fmt.Fprintf(os.Stdout, "%3d. %-32s → %s\n", i+1, rule.Keyword, rule.Category)
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "Default category: %s\n", cli.BoldStyle.Render(defaultCategory))
	return nil
}
