// Package ingestion prepares raw pasted resume and job text for parsing:
// HTML stripping, whitespace normalization, and word counting.
package ingestion

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	htmlTagRe       = regexp.MustCompile(`(?i)<\s*(html|body|div|p|ul|li|br|h[1-6])\b`)
	multiBlankRe    = regexp.MustCompile(`\n{3,}`)
	trailingSpaceRe = regexp.MustCompile(`[ \t]+\n`)
)

// Prepare cleans raw input text for the pipeline. HTML-looking input is
// reduced to its text content first; all input gets whitespace normalization.
func Prepare(raw string) string {
	text := raw
	if LooksLikeHTML(raw) {
		if stripped, err := StripHTML(raw); err == nil {
			text = stripped
		}
	}
	return CleanText(text)
}

// LooksLikeHTML reports whether the input is probably an HTML fragment,
// e.g. a job posting pasted straight from a careers page.
func LooksLikeHTML(text string) bool {
	return htmlTagRe.MatchString(text)
}

// StripHTML extracts readable text from an HTML fragment, keeping list items
// and block elements on their own lines.
func StripHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, nav, header, footer").Remove()

	var sb strings.Builder
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, td, div").Each(func(_ int, sel *goquery.Selection) {
		// Skip container nodes whose text is fully covered by children
		if sel.Children().Filter("p, li, div, ul, ol").Length() > 0 {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		if sel.Is("li") {
			sb.WriteString("- ")
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	})

	if sb.Len() == 0 {
		// No block structure found; fall back to the whole document text
		return strings.TrimSpace(doc.Text()), nil
	}
	return sb.String(), nil
}

// CleanText normalizes line endings and whitespace while preserving line
// structure (headings and bullets survive intact).
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = trailingSpaceRe.ReplaceAllString(content, "\n")
	content = multiBlankRe.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// WordCount counts whitespace-separated tokens, feeding parse metadata.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
