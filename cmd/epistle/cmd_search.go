// Package main: the `search` subcommand filters the registry by topic,
// personas, and keywords.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchTopic    string
	searchPersonas string
	searchKeywords string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search epistles",
	Long: `Searches the registry. All given filters must match; results keep
registry order.

Examples:
  epistle search --topic budgets
  epistle search --personas Alice,Bob --keywords sre`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchTopic, "topic", "", "Topic substring (case-insensitive)")
	searchCmd.Flags().StringVar(&searchPersonas, "personas", "", "Persona names, comma-separated (any may match)")
	searchCmd.Flags().StringVar(&searchKeywords, "keywords", "", "Keywords, comma-separated (any may match)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	records, err := svc.Search(searchTopic,
		splitCommaList(searchPersonas), splitCommaList(searchKeywords))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%d epistle(s) found:\n\n", len(records))
	for _, rec := range records {
		fmt.Fprintf(out, "  %s | %s\n", rec.ID, truncate(rec.Topic, 60))
	}
	return nil
}
