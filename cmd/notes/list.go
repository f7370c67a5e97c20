package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
	"github.com/aretw0/notes/pkg/reldate"
	"github.com/aretw0/notes/pkg/store"
)

func newListCmd(c *cli) *cobra.Command {
	var (
		asJSON   bool
		category string
		search   string
		match    string
		refresh  bool
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Long: `List shows the notes matching the saved filter. --category and --search
override it for this run; add --save to keep them as the new filter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if match != "" && !doublestar.ValidatePattern(match) {
				return failed("Invalid --match pattern", fmt.Errorf("%q", match))
			}

			ctx := cmd.Context()
			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.LoadAll(ctx, refresh); err != nil {
				return failed("Failed to fetch notes", err)
			}

			filter := app.Store.Filter()
			if cmd.Flags().Changed("category") {
				cat, err := core.ParseCategory(category)
				if err != nil {
					return failed("Invalid category", err)
				}
				filter.Category = cat
			}
			if cmd.Flags().Changed("search") {
				filter.Query = search
			}
			if save {
				app.Store.SetCategory(filter.Category)
				app.Store.SetSearchQuery(filter.Query)
			}

			filtered := store.FilterNotes(app.Store.Notes(), filter)
			if match != "" {
				filtered = matchTitles(filtered, match)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if filtered == nil {
					filtered = []core.Note{}
				}
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(filtered); err != nil {
					return failed("Error encoding JSON", err)
				}
				return nil
			}

			if msg, ok := app.Store.Error(); ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
			}
			printNotes(out, filtered, time.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category (All, Personal, Work, Ideas, Todo, Other)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by title or description substring")
	cmd.Flags().StringVar(&match, "match", "", "Filter by title glob, e.g. 'meeting*'")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch from the API even when local notes exist")
	cmd.Flags().BoolVar(&save, "save", false, "Persist --category and --search as the saved filter")
	return cmd
}

// matchTitles keeps notes whose lowercased title matches the glob pattern.
func matchTitles(notes []core.Note, pattern string) []core.Note {
	pattern = strings.ToLower(pattern)
	var out []core.Note
	for _, n := range notes {
		if ok, _ := doublestar.Match(pattern, strings.ToLower(n.Title)); ok {
			out = append(out, n)
		}
	}
	return out
}

func printNotes(out io.Writer, list []core.Note, now time.Time) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No notes found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tUPDATED")
	for _, n := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.ID, n.Title, n.Category, updatedLabel(n, now))
	}
	w.Flush()
}

func updatedLabel(n core.Note, now time.Time) string {
	label, err := reldate.ParseAndFormat(n.UpdatedAt, now.Local())
	if err != nil {
		return n.UpdatedAt
	}
	return label
}
