package docxconv

import "strings"

// singleTokenColumns are fields expected to hold one short token; their
// extracted value is cut at the first whitespace boundary.
var singleTokenColumns = map[string]bool{
	ColumnName:       true,
	ColumnDepartment: true,
}

// ExtractColumn returns the extracted text for one canonical column.
// Heading levels 2 and 3 are searched for nodes whose canonicalized text
// equals the column; the content of every match is concatenated, since a
// document may restate a field under sub-headings. The body field falls
// back to heuristic segmentation of the top-level paragraphs when no
// heading matched, and is always annotated against the policy bounds.
func ExtractColumn(tree *StructureTree, column string, policy BodyPolicy) string {
	var parts []string
	for _, nodes := range [][]HeadingNode{tree.H2, tree.H3} {
		for _, node := range nodes {
			if Canonicalize(node.Text) == column {
				parts = append(parts, node.Content...)
			}
		}
	}

	if column == ColumnBody && len(parts) == 0 {
		return policy.Extract(tree.Text)
	}

	content := strings.TrimSpace(strings.Join(parts, " "))
	if content == "" {
		return ""
	}

	if column == ColumnBody {
		return policy.annotate(content)
	}
	if singleTokenColumns[column] {
		return strings.Fields(content)[0]
	}
	return content
}
