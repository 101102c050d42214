package ingestion

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	spaceRun = regexp.MustCompile(`[ \t]+`)
	blankRun = regexp.MustCompile(`\n\n\n+`)
)

// SanitizeDescription strips any HTML markup from a scraped job description
// and normalizes the remaining whitespace. External feeds routinely deliver
// descriptions as raw fragments of the posting page, so plain text passes
// through unchanged but markup never reaches storage.
func SanitizeDescription(raw string) string {
	if raw == "" {
		return ""
	}

	text := raw
	if strings.ContainsAny(raw, "<>") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
		if err == nil {
			// Block-level elements become line breaks so list items and
			// paragraphs do not run together.
			doc.Find("br, p, li, div, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
				s.AppendHtml("\n")
			})
			doc.Find("script, style").Remove()
			text = doc.Text()
		}
	}

	return CleanText(text)
}

// CleanText normalizes line endings, collapses runs of spaces inside lines,
// and caps consecutive blank lines at one.
func CleanText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = spaceRun.ReplaceAllString(strings.TrimSpace(line), " ")
		cleaned = append(cleaned, line)
	}

	result := strings.Join(cleaned, "\n")
	result = blankRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// NormalizeSkills lowercases, trims, and de-duplicates a skill list while
// preserving first-seen order.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
