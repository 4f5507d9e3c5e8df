package notes

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
)

// renderHTML converts the Markdown document to HTML and rewrites the bullet
// markup the section formatters emit into real line breaks.
func (n *implNotes) renderHTML(markdownPath, outputPath string) error {
	markdown, err := os.ReadFile(markdownPath)
	if err != nil {
		return fmt.Errorf("read markdown: %w", err)
	}

	var buf bytes.Buffer
	if err := goldmark.Convert(markdown, &buf); err != nil {
		return fmt.Errorf("render html: %w", err)
	}

	html := buf.String()
	html = strings.ReplaceAll(html, `\line`, "<br>")
	html = strings.ReplaceAll(html, `\bullet`, "<br> &nbsp &nbsp &nbsp - ")

	return os.WriteFile(outputPath, []byte(html), 0644)
}
