// Package main implements the epistle CLI: persona-to-persona letters
// tracked in an NDJSON registry with one markdown document per letter.
package main

import (
	"fmt"
	"os"

	"epistle/internal/config"
	epistlesvc "epistle/internal/epistle"
	"epistle/internal/logging"
	"epistle/internal/registry"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose bool
	dirFlag string

	// Per-invocation state, built in PersistentPreRunE.
	logger *zap.Logger
	svc    *epistlesvc.Service
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "epistle",
	Short: "epistle - letters between personas, with a registry that remembers them",
	Long: `epistle manages a personal store of persona conversations.

Each epistle is a letter between two or more named personas. The
registry (one JSON record per line) is the source of truth; every
epistle also gets a markdown document for the letter itself.

The store directory defaults to .epistles in the current directory and
can be set with --dir or the EPISTLE_DIR environment variable.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir := config.ResolveDir(dirFlag)

		cfg, err := config.Load(dir)
		if err != nil {
			return err
		}
		logger, err = logging.Build(dir, cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger = logger.With(zap.String("invocation", uuid.NewString()))

		store, err := registry.NewStore(dir, logger)
		if err != nil {
			return err
		}
		svc = epistlesvc.NewService(store, logger)
		logger.Debug("store ready", zap.String("dir", dir))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Epistle store directory (default: .epistles, or EPISTLE_DIR)")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(addContextCmd)
}

func main() {
	// Extensions register in their init functions; attach them after
	// all inits have run so registration order never matters.
	applyPlugins(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
