// Package main: the `new` subcommand creates an epistle between
// personas and prints the resulting registry record.
package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	newWith       string
	newTopic      string
	newPromptedBy string
	newContext    []string
	newKeywords   string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new epistle between personas",
	Long: `Creates a new epistle: a registry entry plus a markdown document
seeded with the conversation template.

Example:
  epistle new --with "Alice,Bob" --topic "Error budgets" --context design.md`,
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newWith, "with", "", "Personas, comma-separated (at least 2, required)")
	newCmd.Flags().StringVar(&newTopic, "topic", "", "Epistle topic (default: Untitled)")
	newCmd.Flags().StringVar(&newPromptedBy, "prompted-by", "", "Artifact that prompted this epistle")
	newCmd.Flags().StringArrayVar(&newContext, "context", nil, "Context file to attach (repeatable)")
	newCmd.Flags().StringVar(&newKeywords, "keywords", "", "Keywords, comma-separated")
	newCmd.MarkFlagRequired("with")
}

func runNew(cmd *cobra.Command, args []string) error {
	personas := splitCommaList(newWith)

	var promptedBy *string
	if newPromptedBy != "" {
		promptedBy = &newPromptedBy
	}

	rec, err := svc.Create(personas, newTopic, promptedBy, newContext, splitCommaList(newKeywords))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	fmt.Fprintf(cmd.OutOrStdout(), "\nEpistle created: %s\n",
		filepath.Join(svc.Store().Dir(), rec.File))
	return nil
}

// splitCommaList splits a comma-separated flag value, trimming spaces
// and dropping empty entries.
func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
