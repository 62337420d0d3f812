// Package docx extracts plain text from .docx files by reading
// word/document.xml out of the ZIP archive.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	docxconv "github.com/yshk0402/docx-converter"
)

// Ensure Extractor implements docxconv.TextExtractor at compile time.
var _ docxconv.TextExtractor = (*Extractor)(nil)

// Extractor reads the plain text of Word documents. Paragraphs become
// lines; table rows are flattened to "|"-separated lines so downstream
// table heuristics still recognize them.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText reads the file at path and returns its text content.
func (e *Extractor) ExtractText(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", docxconv.Errorf(docxconv.EINVALID, "%s: word/document.xml not found in archive", path)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read document.xml: %w", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return "", docxconv.Errorf(docxconv.EINVALID, "%s: malformed document.xml: %s", path, err)
	}

	root := doc.Root()
	if root == nil {
		return "", docxconv.Errorf(docxconv.EINVALID, "%s: empty document.xml", path)
	}

	var lines []string
	for _, el := range root.ChildElements() {
		if el.Tag != "body" {
			continue
		}
		for _, child := range el.ChildElements() {
			switch child.Tag {
			case "p":
				if text := runText(child); text != "" {
					lines = append(lines, text)
				}
			case "tbl":
				lines = append(lines, tableLines(child)...)
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}

// runText concatenates the text runs of a paragraph element.
func runText(p *etree.Element) string {
	var b strings.Builder
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == "t" {
			b.WriteString(el.Text())
			return
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(p)
	return strings.TrimSpace(b.String())
}

// tableLines flattens a table element into "|"-separated row lines.
func tableLines(tbl *etree.Element) []string {
	var lines []string
	for _, row := range tbl.ChildElements() {
		if row.Tag != "tr" {
			continue
		}
		var cells []string
		for _, cell := range row.ChildElements() {
			if cell.Tag != "tc" {
				continue
			}
			var parts []string
			for _, p := range cell.ChildElements() {
				if p.Tag != "p" {
					continue
				}
				if text := runText(p); text != "" {
					parts = append(parts, text)
				}
			}
			cells = append(cells, strings.Join(parts, " "))
		}
		if len(cells) > 0 {
			lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		}
	}
	return lines
}
