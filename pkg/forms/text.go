package forms

import (
	"strings"
	"time"
)

// SnippetLength is the number of characters shown in the note list preview.
const SnippetLength = 48

// TimestampLayout is how note timestamps are displayed.
const TimestampLayout = "2006-01-02 15:04:05"

// Snippet returns the first SnippetLength characters of content, followed by
// an ellipsis when content is longer.
func Snippet(content string) string {
	r := []rune(content)
	if len(r) <= SnippetLength {
		return content
	}
	return string(r[:SnippetLength]) + "…"
}

// Lines splits content on line breaks for display. Empty content has no lines.
func Lines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// FormatTimestamp renders t in local time, or "-" when t is zero.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(TimestampLayout)
}
