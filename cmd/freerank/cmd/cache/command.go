// Package cache implements the cache command.
package cache

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/freerank/cmd/application"
	"github.com/agentstation/freerank/internal/cache"
)

// NewCommand creates the cache command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cache",
		GroupID: "management",
		Short:   "Manage cached source data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newClearCommand(app))
	return cmd
}

func newClearCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Clear(cmd.OutOrStdout(), app)
		},
	}
}

// Clear removes the configured cache directory.
func Clear(w io.Writer, app application.Application) error {
	dir := app.Paths().CacheDir
	if err := cache.New(dir, 0).Clear(); err != nil {
		return err
	}
	app.Logger().Debug().Str("dir", dir).Msg("Cache cleared")
	_, err := fmt.Fprintf(w, "Cleared %s\n", dir)
	return err
}
