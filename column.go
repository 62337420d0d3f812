package docxconv

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Affixes stripped from discovered column names before synonym lookup.
var (
	columnPrefixes = []string{"部署", "お", "■", "□", "●", "※"}
	columnSuffixes = []string{"・事業所名", "の内容", "について", "のお願い", "：", ":"}
)

// columnSynonyms maps alternate spellings of a field to its canonical name.
var columnSynonyms = map[string]string{
	"企画名":   ColumnProject,
	"締切日":   ColumnDeadline,
	"文字数":   ColumnCharLimit,
	"メッセージ": ColumnBody,
	"本文":    ColumnBody,
	"氏名":    ColumnName,
	"所属":    ColumnDepartment,
}

// columnStoplist marks discovered candidates that are prose fragments
// rather than field labels.
var columnStoplist = []string{"について", "お願い", "です", "ます", "した", "から"}

// Canonicalize normalizes a raw column name: trims it, strips known
// suffixes and prefixes, and resolves synonym spellings to the canonical
// field name. Stripping runs to a fixpoint and is skipped when it would
// empty the name, which keeps canonicalization idempotent (e.g. "部署"
// stays "部署" even though it is also a strippable prefix). Suffixes are
// tried first: a compound label like "部署・事業所名" must lose its suffix
// while the field name is still attached, or the leading "部署" cut would
// leave a bare suffix the empty-name guard then refuses to remove.
func Canonicalize(name string) string {
	name = strings.TrimSpace(name)

	for stripped := true; stripped; {
		stripped = false
		for _, suffix := range columnSuffixes {
			if rest, ok := strings.CutSuffix(name, suffix); ok && strings.TrimSpace(rest) != "" {
				name = strings.TrimSpace(rest)
				stripped = true
			}
		}
		for _, prefix := range columnPrefixes {
			if rest, ok := strings.CutPrefix(name, prefix); ok && strings.TrimSpace(rest) != "" {
				name = strings.TrimSpace(rest)
				stripped = true
			}
		}
	}

	if canonical, ok := columnSynonyms[name]; ok {
		return canonical
	}
	return name
}

// columnRule is one pattern family for column discovery. The matcher runs
// against a single cleaned line; extract pulls the raw column name out of
// the match, returning "" when the match should be rejected.
type columnRule struct {
	re      *regexp.Regexp
	extract func(m []string) string
}

// group returns submatch n trimmed.
func group(n int) func(m []string) string {
	return func(m []string) string { return strings.TrimSpace(m[n]) }
}

var digitsOnlyRe = regexp.MustCompile(`^\d+$`)

// columnRules are evaluated in order against each line; the first match
// wins and discovery moves to the next line.
var columnRules = []columnRule{
	{re: regexp.MustCompile(`【(.+?)】`), extract: group(1)},
	{re: regexp.MustCompile(`■\s*(.+?)\s*[:：]`), extract: group(1)},
	{re: regexp.MustCompile(`□\s*(.+?)\s*[:：]`), extract: group(1)},
	{re: regexp.MustCompile(`●\s*(.+?)\s*[:：]`), extract: group(1)},
	{
		// Generic key：value line. Clock times ("14：30") would otherwise
		// match with the hour as the key, so purely numeric keys are
		// rejected.
		re: regexp.MustCompile(`^(.+?)[:：]`),
		extract: func(m []string) string {
			key := strings.TrimSpace(m[1])
			if digitsOnlyRe.MatchString(key) {
				return ""
			}
			return key
		},
	},
}

// DiscoverColumns scans raw document text and returns the canonical
// column names plausibly present in it, in first-seen order. The
// identifier column is always included.
func DiscoverColumns(raw string) []string {
	return discoverColumns(raw, DefaultBodyPolicy())
}

func discoverColumns(raw string, body BodyPolicy) []string {
	seen := map[string]bool{ColumnID: true}
	columns := []string{ColumnID}
	add := func(name string) {
		name = Canonicalize(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		columns = append(columns, name)
	}

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = CleanText(line)
		lines = append(lines, line)

		if isTableLine(line) {
			// Table-cell keys: any cell carrying a key：value pair, with
			// either colon width.
			for _, cell := range strings.Split(line, "|") {
				cell = strings.TrimSpace(cell)
				if idx := strings.IndexAny(cell, ":："); idx > 0 {
					add(strings.TrimSpace(cell[:idx]))
				}
			}
			continue
		}

		for _, rule := range columnRules {
			m := rule.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if name := rule.extract(m); name != "" {
				add(name)
			}
			break
		}
	}

	// The body field has no reliable label; probe the raw paragraphs with
	// the body extractor instead.
	if text := body.Extract(lines); utf8.RuneCountInString(text) >= body.MinChunkRunes {
		add(ColumnBody)
	}

	// Drop candidates whose match was prose rather than a field label.
	filtered := columns[:0]
	for _, column := range columns {
		if !containsStoplisted(column) {
			filtered = append(filtered, column)
		}
	}
	return filtered
}

func containsStoplisted(column string) bool {
	lower := strings.ToLower(column)
	for _, stop := range columnStoplist {
		if strings.Contains(lower, stop) {
			return true
		}
	}
	return false
}
