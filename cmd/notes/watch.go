package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/adapters/lifecycle"
	"github.com/aretw0/notes/pkg/core"
)

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow changes made to the local state by other processes",
		Long: `Watch reloads the local state whenever another notes process changes it
and prints the new counts. Requires the file backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			changes, err := app.Watch(ctx)
			if err != nil {
				return failed("Failed to watch state", err)
			}

			src := lifecycle.NewSource(changes, core.EventStorageChanged)
			if err := src.Start(ctx); err != nil {
				return failed("Failed to start watcher", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching local state (%d notes). Press Ctrl+C to stop.\n", app.Store.Total())
			for e := range src.Events() {
				if err := app.Store.Rehydrate(ctx); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
					continue
				}
				fmt.Fprintf(out, "%s: %d notes, filter %s %q\n", e, app.Store.Total(),
					app.Store.SelectedCategory(), app.Store.SearchQuery())
			}
			return nil
		},
	}
}
