package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
)

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			note, err := app.Store.Fetch(ctx, args[0])
			if errors.Is(err, core.ErrNotFound) {
				return fmt.Errorf("Note %s not found", args[0])
			}
			if err != nil {
				return failed("Failed to fetch note", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s | %s\n\n", note.Title, note.Category)
			if note.Description != "" {
				fmt.Fprintf(out, "%s\n\n", note.Description)
			}
			fmt.Fprintf(out, "ID:      %s\n", note.ID)
			fmt.Fprintf(out, "Created: %s\n", note.CreatedAt)
			fmt.Fprintf(out, "Updated: %s (%s)\n", note.UpdatedAt, updatedLabel(note, time.Now()))
			return nil
		},
	}
}
