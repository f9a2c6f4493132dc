// Package main: the `list` subcommand prints the registry as a table,
// newest first.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	listFilter string
	listSince  string
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
var draftStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all epistles in the registry",
	Long: `Lists epistles, newest first. Both filters are optional and
combine with AND.

Examples:
  epistle list --filter Alice
  epistle list --since 2025-10-28`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Only epistles involving this persona")
	listCmd.Flags().StringVar(&listSince, "since", "", "Only epistles on or after this date (YYYY-MM-DD)")
}

func runList(cmd *cobra.Command, args []string) error {
	records, err := svc.List(listFilter, listSince)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%d epistle(s):\n\n", len(records))
	if len(records) == 0 {
		return nil
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("  %-20s | %-10s | %-40s | %-8s | %s",
		"ID", "DATE", "PERSONAS", "STATUS", "TOPIC")))
	for _, rec := range records {
		status := rec.Status
		if status == "draft" {
			status = draftStyle.Render(status)
		}
		fmt.Fprintf(out, "  %-20s | %-10s | %-40s | %-8s | %s\n",
			rec.ID, rec.Date, strings.Join(rec.Personas, ", "), status, truncate(rec.Topic, 50))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
