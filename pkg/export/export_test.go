package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notes/pkg/core"
)

var fixedNow = time.Date(2026, time.February, 2, 12, 0, 0, 0, time.UTC)

func note(id, title, desc string, c core.Category) core.Note {
	return core.Note{
		ID: id, Title: title, Description: desc, Category: c,
		CreatedAt: "2026-02-01T10:00:00.000Z", UpdatedAt: "2026-02-01T10:00:00.000Z",
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	notes := []core.Note{note("1", "Alpha", "First", core.CategoryWork)}
	require.NoError(t, JSON(&buf, notes, "alp", fixedNow))

	var got Payload
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "2026-02-02T12:00:00.000Z", got.ExportedAt)
	assert.Equal(t, "alp", got.SearchQuery)
	assert.Equal(t, notes, got.Notes)
	assert.Contains(t, buf.String(), "\n  \"exportedAt\"")
}

func TestJSON_OmitsEmptyQuery(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, nil, "", fixedNow))
	assert.NotContains(t, buf.String(), "searchQuery")
	assert.Contains(t, buf.String(), `"notes": []`)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "notes-2026-02-02_12-00-00.json", Filename("notes", "json", fixedNow))
}

func texts(doc Document) []string {
	var out []string
	for _, p := range doc.Pages {
		for _, b := range p.Blocks {
			out = append(out, b.Text)
		}
	}
	return out
}

func TestPaginate_Header(t *testing.T) {
	doc := Paginate([]core.Note{
		note("1", "Alpha", "First", core.CategoryWork),
		note("2", "Beta", "   ", core.CategoryWork),
	}, "a", fixedNow, DefaultLayout)

	lines := texts(doc)
	assert.Equal(t, "Notes export (2)", doc.Title)
	assert.Equal(t, "Notes export (2)", lines[0])
	assert.Equal(t, "Category: Work", lines[1])
	assert.Equal(t, "Search query: a", lines[2])
	assert.Equal(t, "Exported: 2/2/2026, 12:00:00 PM", lines[3])
	assert.Contains(t, lines, "Alpha | Work")
	assert.Contains(t, lines, "(No description)")
	assert.Contains(t, lines, "Updated: 2/1/2026, 10:00:00 AM")
}

func TestPaginate_MultipleCategories(t *testing.T) {
	doc := Paginate([]core.Note{
		note("1", "Alpha", "x", core.CategoryWork),
		note("2", "Beta", "y", core.CategoryIdeas),
	}, "", fixedNow, DefaultLayout)

	lines := texts(doc)
	assert.Equal(t, "Category: Multiple", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Exported: "))
}

func TestPaginate_BreaksPages(t *testing.T) {
	var notes []core.Note
	for i := 0; i < 10; i++ {
		notes = append(notes, note("id", "Title", "Body", core.CategoryTodo))
	}
	layout := Layout{Width: 40, PageLines: 12}
	doc := Paginate(notes, "", fixedNow, layout)

	require.Greater(t, len(doc.Pages), 1)
	for _, p := range doc.Pages {
		assert.LessOrEqual(t, len(p.Blocks), layout.PageLines)
		assert.NotEmpty(t, p.Blocks)
	}
	// A note title never starts at the bottom without room for its body.
	for _, p := range doc.Pages {
		for i, b := range p.Blocks {
			if b.Kind == KindTitle {
				assert.Less(t, i, len(p.Blocks)-1)
			}
		}
	}
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"aaa bbb", "ccc"}, wrap("aaa bbb ccc", 7))
	assert.Equal(t, []string{"abcde", "fgh"}, wrap("abcdefgh", 5))
	assert.Equal(t, []string{"one", "", "two"}, wrap("one\n\ntwo", 10))
	assert.Equal(t, []string{"ééé", "éé"}, wrap("ééééé", 3))
}

func TestWriteText(t *testing.T) {
	doc := Document{Pages: []Page{
		{Blocks: []Block{{Kind: KindHeading, Text: "first"}}},
		{Blocks: []Block{{Kind: KindBody, Text: "second"}}},
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, doc))
	assert.Equal(t, "first\n\f\nsecond\n", buf.String())
}

func TestWriteHTML(t *testing.T) {
	doc := Paginate([]core.Note{
		note("1", "<script>alert(1)</script>", "Line one", core.CategoryPersonal),
	}, "", fixedNow, DefaultLayout)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, doc))
	out := buf.String()

	assert.Contains(t, out, "<title>Notes export (1)</title>")
	assert.Contains(t, out, "<h1>Notes export (1)</h1>")
	assert.Contains(t, out, "<p>Line one</p>")
	assert.Contains(t, out, "<hr>")
	assert.Contains(t, out, "<em>Updated: 2/1/2026, 10:00:00 AM</em>")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}
