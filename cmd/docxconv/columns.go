package main

import (
	"fmt"

	docxconv "github.com/yshk0402/docx-converter"
)

// Run executes the columns command.
func (c *ColumnsCmd) Run(deps *Dependencies) error {
	text, err := deps.Extractor.ExtractText(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
		return err
	}

	columns := docxconv.DiscoverColumns(text)
	for _, column := range columns {
		fmt.Fprintln(deps.Stdout, column)
	}

	return nil
}
