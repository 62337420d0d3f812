package docxconv

import (
	"regexp"
	"strings"
)

// HeadingNode is a parsed section marker together with the paragraph
// content attached while it was the most recently opened heading.
type HeadingNode struct {
	Text    string
	Content []string
}

// StructureTree holds the parsed structure of one document: heading nodes
// by level, plus paragraphs seen before any heading was opened.
type StructureTree struct {
	H1   []HeadingNode
	H2   []HeadingNode
	H3   []HeadingNode
	Text []string
}

func (t *StructureTree) level(n int) *[]HeadingNode {
	switch n {
	case 1:
		return &t.H1
	case 2:
		return &t.H2
	default:
		return &t.H3
	}
}

var headingRe = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)

// ParseStructure parses intermediate markup into a StructureTree.
// Paragraph attachment is strictly sequential: each paragraph belongs to
// the single most recently opened heading node, or to the top-level list
// if no heading has been opened yet.
//
// Returns ESTRUCTURE if a #-prefixed line is not a well-formed level 1-3
// heading.
func ParseStructure(markup string) (*StructureTree, error) {
	tree := &StructureTree{}

	// Cursor to the last opened heading, kept as (level, index) so
	// appends to the level slices cannot invalidate it.
	curLevel, curIndex := 0, -1

	var paragraph []string
	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		text := strings.Join(paragraph, " ")
		paragraph = nil
		if curLevel == 0 {
			tree.Text = append(tree.Text, text)
			return
		}
		nodes := tree.level(curLevel)
		(*nodes)[curIndex].Content = append((*nodes)[curIndex].Content, text)
	}

	for _, line := range strings.Split(markup, "\n") {
		line = strings.TrimSpace(line)

		if line == "" {
			flush()
			continue
		}

		if strings.HasPrefix(line, "#") {
			m := headingRe.FindStringSubmatch(line)
			if m == nil {
				return nil, Errorf(ESTRUCTURE, "malformed heading line: %q", line)
			}
			flush()
			level := len(m[1])
			nodes := tree.level(level)
			*nodes = append(*nodes, HeadingNode{Text: strings.TrimSpace(m[2])})
			curLevel, curIndex = level, len(*nodes)-1
			continue
		}

		paragraph = append(paragraph, line)
	}
	flush()

	return tree, nil
}
