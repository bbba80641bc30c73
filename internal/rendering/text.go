package rendering

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText returns the visible text of an HTML fragment, with whitespace collapsed.
func PlainText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// Snippet returns at most limit runes of the rendered text of a section, with an ellipsis when cut.
func Snippet(content string, limit int) string {
	html := strings.ReplaceAll(FormatContent(content), "</p><p>", "</p> <p>")
	text, err := PlainText(html)
	if err != nil {
		text = strings.Join(strings.Fields(content), " ")
	}
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
