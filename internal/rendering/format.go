package rendering

import (
	"regexp"
	"strings"
)

// EmptyContent is shown in place of a section with no text.
const EmptyContent = "<em>Sin contenido</em>"

// substitution is one step of the markdown-to-HTML chain
type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

// formatChain runs in order: headings (deepest first), bold, list items.
var formatChain = []substitution{
	{regexp.MustCompile(`(?m)^### (.+)$`), "<h3>$1</h3>"},
	{regexp.MustCompile(`(?m)^## (.+)$`), "<h2>$1</h2>"},
	{regexp.MustCompile(`(?m)^# (.+)$`), "<h1>$1</h1>"},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "<strong>$1</strong>"},
	{regexp.MustCompile(`(?m)^- (.+)$`), "<li>$1</li>"},
	{regexp.MustCompile(`(?m)^(\d+)\. (.+)$`), "<li>$2</li>"},
}

// FormatContent converts the basic markdown produced by the generator into an HTML fragment.
// The input is escaped before any markup is introduced, so generated text can never inject tags.
// This is a flat single pass: no nesting, and applying it to its own output escapes it again.
func FormatContent(content string) string {
	if content == "" {
		return EmptyContent
	}

	formatted := strings.ReplaceAll(content, "\r\n", "\n")
	formatted = EscapeHTML(formatted)

	for _, step := range formatChain {
		formatted = step.pattern.ReplaceAllString(formatted, step.replacement)
	}

	formatted = strings.ReplaceAll(formatted, "\n\n", "</p><p>")
	return "<p>" + formatted + "</p>"
}
