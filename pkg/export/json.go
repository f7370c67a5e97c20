// Package export writes note collections out as JSON, paginated plain text or
// HTML.
package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/aretw0/notes/pkg/core"
)

// FilenameLayout is the timestamp layout used in export file names.
const FilenameLayout = "2006-01-02_15-04-05"

// Payload is the JSON export document.
type Payload struct {
	ExportedAt  string      `json:"exportedAt"`
	SearchQuery string      `json:"searchQuery,omitempty"`
	Notes       []core.Note `json:"notes"`
}

// JSON writes notes as an indented JSON payload. An empty searchQuery is omitted.
func JSON(w io.Writer, notes []core.Note, searchQuery string, now time.Time) error {
	if notes == nil {
		notes = []core.Note{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Payload{
		ExportedAt:  core.FormatTime(now),
		SearchQuery: searchQuery,
		Notes:       notes,
	})
}

// Filename builds "prefix-2006-01-02_15-04-05.ext" from the export time.
func Filename(prefix, ext string, now time.Time) string {
	return prefix + "-" + now.Format(FilenameLayout) + "." + ext
}
