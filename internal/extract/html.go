// Package extract recovers candidate report records from raw mail messages.
// Everything here is heuristic: a pattern that fails to match yields nothing
// and the caller moves on, it never fails the batch.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Text strips markup from a mail body, keeping line structure: explicit
// breaks and block-level elements become newlines so that line-positional
// heuristics (second non-blank line, labeled lines) still work. Plain-text
// bodies pass through unchanged.
func Text(body string) string {
	if body == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		// html.Parse is lenient; this path is for truly unreadable input.
		return tagPattern.ReplaceAllString(body, "\n")
	}
	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})
	doc.Find("p, div, li, tr, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return doc.Text()
}

// FlatText strips markup and collapses all whitespace runs to single spaces.
// Used where phrase patterns ("from X to Y") must match across line breaks.
func FlatText(body string) string {
	return strings.Join(strings.Fields(Text(body)), " ")
}
