package export

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/notes/pkg/core"
)

// DisplayLayout formats export and update times for readers.
const DisplayLayout = "1/2/2006, 3:04:05 PM"

// BlockKind tells renderers how to present a block.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindMeta
	KindTitle
	KindBody
	KindUpdated
	KindSeparator
	KindSpace
)

// Block is one wrapped line of the document.
type Block struct {
	Kind BlockKind
	Text string
}

// Page is a run of blocks that fits in Layout.PageLines.
type Page struct {
	Blocks []Block
}

// Document is a paginated export.
type Document struct {
	Title string
	Pages []Page
}

// Layout controls wrapping and page breaks. Sizes are in characters and lines.
type Layout struct {
	Width     int
	PageLines int
}

// DefaultLayout approximates an A4 page of monospaced text.
var DefaultLayout = Layout{Width: 80, PageLines: 60}

// Space reserved before starting each part of a note.
const (
	noteNeeds    = 4
	updatedNeeds = 2
)

type paginator struct {
	layout Layout
	doc    Document
	used   int
}

func (p *paginator) current() *Page {
	if len(p.doc.Pages) == 0 {
		p.doc.Pages = append(p.doc.Pages, Page{})
	}
	return &p.doc.Pages[len(p.doc.Pages)-1]
}

func (p *paginator) ensureSpace(lines int) {
	if p.used == 0 || p.used+lines <= p.layout.PageLines {
		return
	}
	p.doc.Pages = append(p.doc.Pages, Page{})
	p.used = 0
}

func (p *paginator) add(kind BlockKind, text string) {
	page := p.current()
	page.Blocks = append(page.Blocks, Block{Kind: kind, Text: text})
	p.used++
}

func (p *paginator) addWrapped(kind BlockKind, text string) {
	for _, line := range wrap(text, p.layout.Width) {
		p.ensureSpace(1)
		p.add(kind, line)
	}
}

// Paginate lays out notes for printing. The category line shows the single
// category shared by all notes, or "Multiple".
func Paginate(notes []core.Note, searchQuery string, now time.Time, layout Layout) Document {
	if layout.Width <= 0 {
		layout.Width = DefaultLayout.Width
	}
	if layout.PageLines <= 0 {
		layout.PageLines = DefaultLayout.PageLines
	}

	p := &paginator{layout: layout}
	p.doc.Title = fmt.Sprintf("Notes export (%d)", len(notes))

	p.addWrapped(KindHeading, p.doc.Title)
	p.addWrapped(KindMeta, "Category: "+categoryLabel(notes))
	if searchQuery != "" {
		p.addWrapped(KindMeta, "Search query: "+searchQuery)
	}
	p.addWrapped(KindMeta, "Exported: "+now.Format(DisplayLayout))
	p.add(KindSpace, "")

	for _, n := range notes {
		p.ensureSpace(noteNeeds)
		p.addWrapped(KindTitle, n.Title+" | "+string(n.Category))

		description := strings.TrimSpace(n.Description)
		if description == "" {
			description = "(No description)"
		}
		p.addWrapped(KindBody, description)

		p.ensureSpace(updatedNeeds)
		p.add(KindUpdated, "Updated: "+displayTime(n.UpdatedAt, now.Location()))
		p.ensureSpace(1)
		p.add(KindSeparator, strings.Repeat("-", layout.Width))
		p.ensureSpace(1)
		p.add(KindSpace, "")
	}
	return p.doc
}

func categoryLabel(notes []core.Note) string {
	seen := map[core.Category]bool{}
	for _, n := range notes {
		seen[n.Category] = true
	}
	if len(seen) == 1 {
		for c := range seen {
			return string(c)
		}
	}
	return "Multiple"
}

func displayTime(value string, loc *time.Location) string {
	t := core.ParseTime(value)
	if t.IsZero() {
		return value
	}
	return t.In(loc).Format(DisplayLayout)
}

// wrap splits text into lines of at most width runes, breaking on spaces when
// possible. Existing line breaks are kept.
func wrap(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var line strings.Builder
		lineLen := 0
		for _, w := range words {
			for utf8.RuneCountInString(w) > width {
				if lineLen > 0 {
					lines = append(lines, line.String())
					line.Reset()
					lineLen = 0
				}
				head, tail := splitRunes(w, width)
				lines = append(lines, head)
				w = tail
			}
			wl := utf8.RuneCountInString(w)
			if wl == 0 {
				continue
			}
			if lineLen > 0 && lineLen+1+wl > width {
				lines = append(lines, line.String())
				line.Reset()
				lineLen = 0
			}
			if lineLen > 0 {
				line.WriteByte(' ')
				lineLen++
			}
			line.WriteString(w)
			lineLen += wl
		}
		if lineLen > 0 {
			lines = append(lines, line.String())
		}
	}
	return lines
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}
