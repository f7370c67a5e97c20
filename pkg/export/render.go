package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
)

// PageBreak separates pages in text output.
const PageBreak = "\f"

// WriteText renders the document as plain text, one form feed between pages.
func WriteText(w io.Writer, doc Document) error {
	var buf bytes.Buffer
	for i, page := range doc.Pages {
		if i > 0 {
			buf.WriteString(PageBreak + "\n")
		}
		for _, b := range page.Blocks {
			buf.WriteString(b.Text)
			buf.WriteByte('\n')
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Markdown renders the document as Markdown. Pagination is dropped.
func Markdown(doc Document) string {
	var sb strings.Builder
	var body []string
	flushBody := func() {
		if len(body) > 0 {
			sb.WriteString(strings.Join(body, "\n") + "\n\n")
			body = body[:0]
		}
	}

	for _, page := range doc.Pages {
		for _, b := range page.Blocks {
			if b.Kind != KindBody {
				flushBody()
			}
			switch b.Kind {
			case KindHeading:
				fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(b.Text))
			case KindMeta:
				fmt.Fprintf(&sb, "%s  \n", escapeMarkdown(b.Text))
			case KindTitle:
				fmt.Fprintf(&sb, "## %s\n\n", escapeMarkdown(b.Text))
			case KindBody:
				body = append(body, escapeMarkdown(b.Text))
			case KindUpdated:
				fmt.Fprintf(&sb, "*%s*\n\n", escapeMarkdown(b.Text))
			case KindSeparator:
				sb.WriteString("---\n\n")
			case KindSpace:
				sb.WriteString("\n")
			}
		}
	}
	flushBody()
	return sb.String()
}

// WriteHTML renders the document as a standalone HTML page.
func WriteHTML(w io.Writer, doc Document) error {
	var body bytes.Buffer
	if err := goldmark.New().Convert([]byte(Markdown(doc)), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(doc.Title), body.String())
	return err
}

const markdownSpecials = "\\`*_{}[]()#+-.!|<>~"

func escapeMarkdown(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(markdownSpecials, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
