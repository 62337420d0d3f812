package docxconv

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	boldHeadingRe = regexp.MustCompile(`\*\*【(.+?)】\*\*`)
	heading3Re    = regexp.MustCompile(`【(.+?)】`)
	borderOnlyRe  = regexp.MustCompile(`^[+\-=＝|\s]+$`)
)

// minTableCellRunes is the length at which a table cell is treated as
// standalone body content rather than layout noise.
const minTableCellRunes = 20

// ToMarkup converts normalized raw document text into an intermediate
// heading/paragraph markup. Bracketed headings become markdown headings,
// full-width-colon key/value lines become a heading followed by the value,
// and table-like blocks are buffered and flattened when the block closes.
// Emitted blocks are joined with blank lines so the structure parser
// treats each as distinct.
//
// Returns ETRANSCODE if the input is not valid UTF-8.
func ToMarkup(text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", Errorf(ETRANSCODE, "input is not valid UTF-8 text")
	}

	text = boldHeadingRe.ReplaceAllString(text, "## $1")
	text = heading3Re.ReplaceAllString(text, "### $1")

	var out []string
	var table []string

	for _, line := range strings.Split(text, "\n") {
		line = CleanText(line)

		if isTableLine(line) {
			table = append(table, line)
			continue
		}
		if len(table) > 0 {
			out = append(out, flattenTable(table)...)
			table = nil
		}

		switch {
		case strings.HasPrefix(line, "#"):
			out = append(out, line)
		case strings.Contains(line, "："):
			out = append(out, splitKeyValue(line)...)
		case line != "":
			out = append(out, line)
		}
	}

	// A trailing table block with no closing line still gets flattened.
	if len(table) > 0 {
		out = append(out, flattenTable(table)...)
	}

	return strings.Join(out, "\n\n"), nil
}

// splitKeyValue converts a key：value line into a heading/value block.
// A colon-led line has no label to promote, so its value stays a plain
// content line instead of producing a bare "###" the structure parser
// would reject.
func splitKeyValue(line string) []string {
	key, value, _ := strings.Cut(line, "：")
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)
	if key == "" {
		if value == "" {
			return nil
		}
		return []string{value}
	}
	return []string{"### " + key + "\n" + value}
}

// isTableLine reports whether a line belongs to a table block: it carries
// a cell separator or a box-drawing border sequence.
func isTableLine(line string) bool {
	return strings.Contains(line, "|") || strings.Contains(line, "+-")
}

// flattenTable converts a buffered table block into content lines.
// Border-only lines are dropped. Cells holding a key：value pair become a
// heading/value pair; long cells become standalone content lines; short
// cells are layout noise and are discarded.
func flattenTable(block []string) []string {
	var out []string
	for _, line := range block {
		if borderOnlyRe.MatchString(line) {
			continue
		}
		for _, cell := range strings.Split(line, "|") {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if strings.Contains(cell, "：") {
				out = append(out, splitKeyValue(cell)...)
				continue
			}
			if utf8.RuneCountInString(cell) >= minTableCellRunes {
				out = append(out, cell)
			}
		}
	}
	return out
}
