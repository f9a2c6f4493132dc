// Package main: the `show` subcommand prints an epistle's document,
// rendered for the terminal unless --raw is given.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <epistle-id-or-filename>",
	Short: "Display a specific epistle",
	Long: `Shows the document of one epistle, resolved by exact id first and
then by filename prefix.

Examples:
  epistle show epistle-1730000000
  epistle show alice_bob`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the raw markdown without terminal rendering")
}

func runShow(cmd *cobra.Command, args []string) error {
	_, docPath, err := svc.Show(args[0])
	if err != nil {
		return err
	}

	data, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("read epistle document %s: %w", docPath, err)
	}

	out := cmd.OutOrStdout()
	if showRaw {
		fmt.Fprint(out, string(data))
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Rendering is cosmetic; fall back to the raw document.
		fmt.Fprint(out, string(data))
		return nil
	}
	rendered, err := renderer.Render(string(data))
	if err != nil {
		fmt.Fprint(out, string(data))
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}
