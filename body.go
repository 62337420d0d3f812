package docxconv

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Annotation markers appended to body text that falls outside the
// required length bounds.
const (
	MarkerTooShort = "（要追記）"
	MarkerTooLong  = "（文字数超過）"
)

// BodyPolicy bounds the body field and drives chunk selection. The exact
// length bounds vary by campaign, so they are data rather than constants.
type BodyPolicy struct {
	// Required body length in runes. Shorter bodies are annotated with
	// ShortMarker, longer ones are truncated to MaxRunes and annotated
	// with LongMarker.
	MinRunes int
	MaxRunes int

	// Minimum chunk length for a candidate to survive segmentation.
	MinChunkRunes int

	ShortMarker string
	LongMarker  string
}

// DefaultBodyPolicy returns the standard 150-200 rune policy.
func DefaultBodyPolicy() BodyPolicy {
	return BodyPolicy{
		MinRunes:      150,
		MaxRunes:      200,
		MinChunkRunes: 20,
		ShortMarker:   MarkerTooShort,
		LongMarker:    MarkerTooLong,
	}
}

var (
	separatorOnlyRe = regexp.MustCompile(`^[-=＝ー―〜~＿_]+$`)
	pureDigitRe     = regexp.MustCompile(`^\d+$`)

	// metadataRe matches lines shaped like a field label rather than
	// prose: a bracketed heading, a corner-marked label, or a compact key
	// followed by a colon.
	metadataRe = regexp.MustCompile(`^(【.+?】|[■□●※]\s*.*[:：]|[^\s:：]{1,12}[:：])`)
)

// Extract segments paragraphs into candidate body chunks, discards
// non-body chunks, and returns the longest surviving candidate annotated
// against the policy bounds. It never fails; when no candidate qualifies
// the result is the empty string.
func (p BodyPolicy) Extract(paragraphs []string) string {
	var chunks []string
	var current []string
	var table []string

	closeCurrent := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
		}
	}
	closeTable := func() {
		for _, line := range table {
			if borderOnlyRe.MatchString(line) {
				continue
			}
			for _, cell := range strings.Split(line, "|") {
				cell = strings.TrimSpace(cell)
				if utf8.RuneCountInString(cell) >= p.MinChunkRunes {
					chunks = append(chunks, cell)
				}
			}
		}
		table = nil
	}

	for _, paragraph := range paragraphs {
		line := CleanText(paragraph)

		if isTableLine(line) {
			closeCurrent()
			table = append(table, line)
			continue
		}
		closeTable()

		if line == "" || p.isMetadata(line) {
			closeCurrent()
			continue
		}
		current = append(current, line)
	}
	closeCurrent()
	closeTable()

	best := ""
	bestLen := 0
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		n := utf8.RuneCountInString(chunk)
		if n < p.MinChunkRunes || p.isMetadata(chunk) ||
			pureDigitRe.MatchString(chunk) || separatorOnlyRe.MatchString(chunk) {
			continue
		}
		// Longest wins; ties keep the first-seen chunk.
		if n > bestLen {
			best, bestLen = chunk, n
		}
	}
	if best == "" {
		return ""
	}
	return p.annotate(best)
}

func (p BodyPolicy) isMetadata(line string) bool {
	return metadataRe.MatchString(line) || separatorOnlyRe.MatchString(line) || pureDigitRe.MatchString(line)
}

// annotate applies the length bounds: short bodies are flagged for more
// content, long bodies are truncated to exactly MaxRunes and flagged.
func (p BodyPolicy) annotate(body string) string {
	n := utf8.RuneCountInString(body)
	switch {
	case n < p.MinRunes:
		return body + p.ShortMarker
	case n > p.MaxRunes:
		runes := []rune(body)
		return string(runes[:p.MaxRunes]) + p.LongMarker
	default:
		return body
	}
}
