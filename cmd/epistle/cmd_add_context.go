// Package main: the `add-context` subcommand attaches context files to
// an existing epistle.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var addContextFiles []string

var addContextCmd = &cobra.Command{
	Use:   "add-context <epistle-id>",
	Short: "Add context documents to an epistle",
	Long: `Appends context file references to an epistle's registry entry.
Paths already attached are skipped. The epistle is addressed by exact
id, not by filename.

Example:
  epistle add-context epistle-1730000000 --context notes.md --context design.md`,
	Args: cobra.ExactArgs(1),
	RunE: runAddContext,
}

func init() {
	addContextCmd.Flags().StringArrayVar(&addContextFiles, "context", nil, "Context file to attach (repeatable)")
}

func runAddContext(cmd *cobra.Command, args []string) error {
	rec, err := svc.AddContext(args[0], addContextFiles)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	fmt.Fprintf(cmd.OutOrStdout(), "\nContext added to %s\n", rec.ID)
	return nil
}
