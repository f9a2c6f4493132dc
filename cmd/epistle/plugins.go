// Package main: optional command-set extensions. Extensions register
// through an explicit hook instead of being discovered dynamically;
// a failing extension loses only its own commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// PluginFunc attaches an extension's commands to the root command.
// Commands added this way use the same package-level service that the
// built-in commands use, which is ready by the time any RunE fires.
type PluginFunc func(root *cobra.Command) error

type plugin struct {
	name     string
	register PluginFunc
}

var plugins []plugin

// RegisterPlugin queues an extension command set for registration.
// Call it from an init function before Execute runs.
func RegisterPlugin(name string, fn PluginFunc) {
	plugins = append(plugins, plugin{name: name, register: fn})
}

// applyPlugins registers every queued extension against root. A
// failure is reported as a warning and skipped; the remaining
// extensions and all built-in commands stay available.
func applyPlugins(root *cobra.Command) {
	for _, p := range plugins {
		if err := p.register(root); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not register %s commands: %v\n", p.name, err)
			continue
		}
	}
}
