package render

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// PageMarkdown converts the rendered invoice page into Markdown. Scrapes
// can archive it next to the structured outputs so a record can later be
// audited against what the page actually showed.
func PageMarkdown(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting page to markdown: %w", err)
	}
	return markdown, nil
}
