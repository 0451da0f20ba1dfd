package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-matcher/internal/keywords"
	"github.com/jonathan/keyword-matcher/internal/matching"
	"github.com/jonathan/keyword-matcher/internal/types"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize [term...]",
	Short: "Show the category and priority weight of terms",
	Long:  "Print the category each term falls into. Without arguments, list every category with its weight and terms.",
	RunE:  runCategorize,
}

func init() {
	rootCmd.AddCommand(categorizeCmd)
}

func runCategorize(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, c := range types.AllCategories {
			fmt.Fprintf(out, "%-22s x%.1f  %v\n", c, matching.CategoryWeight(c), keywords.Terms(c))
		}
		return nil
	}

	for _, term := range args {
		c := keywords.Categorize(term)
		fmt.Fprintf(out, "%-20s %-22s x%.1f\n", term, c, matching.CategoryWeight(c))
	}
	return nil
}
