package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
	"github.com/aretw0/notes/pkg/export"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		format string
		dir    string
		prefix string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered notes to a file",
		Long: `Export writes the notes matching the saved filter as json, text or html.
The file is named <prefix>-<timestamp>.<ext> in --dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := exportExt(format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.LoadAll(ctx, false); err != nil {
				return failed("Failed to fetch notes", err)
			}
			list := app.Store.Filtered()
			query := app.Store.SearchQuery()
			now := time.Now()

			if stdout {
				if err := writeExport(cmd.OutOrStdout(), ext, list, query, now); err != nil {
					return failed("Export failed", err)
				}
				return nil
			}

			path := filepath.Join(dir, export.Filename(prefix, ext, now))
			f, err := os.Create(path)
			if err != nil {
				return failed("Export failed", err)
			}
			if err := writeExport(f, ext, list, query, now); err != nil {
				f.Close()
				return failed("Export failed", err)
			}
			if err := f.Close(); err != nil {
				return failed("Export failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes to %s\n", len(list), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, text or html")
	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")
	cmd.Flags().StringVar(&prefix, "prefix", "notes", "File name prefix")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Write to stdout instead of a file")
	return cmd
}

// exportExt maps a --format value to its file extension.
func exportExt(format string) (string, error) {
	switch format {
	case "json", "html":
		return format, nil
	case "text", "txt":
		return "txt", nil
	}
	return "", failed("Invalid format", fmt.Errorf("%q (want json, text or html)", format))
}

func writeExport(w io.Writer, ext string, list []core.Note, query string, now time.Time) error {
	switch ext {
	case "json":
		return export.JSON(w, list, query, now)
	case "html":
		return export.WriteHTML(w, export.Paginate(list, query, now, export.DefaultLayout))
	default:
		return export.WriteText(w, export.Paginate(list, query, now, export.DefaultLayout))
	}
}
