package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	docxconv "github.com/yshk0402/docx-converter"
	"golang.org/x/sync/errgroup"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	docs, err := readDocuments(deps, c.Files, c.Concurrency)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
		return err
	}

	// Without explicit columns, detect them from the first document.
	columns := c.Columns
	if len(columns) == 0 {
		columns = docxconv.DiscoverColumns(docs[0].Content)
		fmt.Fprintf(deps.Stdout, "Detected columns: %s\n", strings.Join(columns, ", "))
	}

	records, errs := deps.Processor.ProcessBatch(docs, columns)

	for _, pe := range errs {
		fmt.Fprintf(deps.Stderr, "  doc %d [%s]: %s\n", pe.DocumentIndex+1, pe.Kind, pe.Message)
	}

	data, err := deps.Exporter.Export(records, columns, errs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
		return err
	}
	if err := os.WriteFile(c.Output, data, 0644); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to write %s\n", c.Output)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d records to %s (%d errors)\n", len(records), c.Output, len(errs))

	if c.Save {
		name := c.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(c.Output), filepath.Ext(c.Output))
		}
		batch := &docxconv.Batch{
			Name:    name,
			Columns: columns,
		}
		if err := deps.Batches.CreateBatch(deps.Ctx, batch, records, docs, errs); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved run %q (%s)\n", name, batch.ID)
	}

	return nil
}

// readDocuments extracts text from the input files concurrently, keeping
// batch positions aligned with argument order.
func readDocuments(deps *Dependencies, files []string, concurrency int) ([]docxconv.Document, error) {
	if len(files) == 0 {
		return nil, docxconv.Errorf(docxconv.EINVALID, "at least one input file required")
	}
	if concurrency < 1 {
		concurrency = 1
	}

	docs := make([]docxconv.Document, len(files))

	g, _ := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, path := range files {
		g.Go(func() error {
			text, err := deps.Extractor.ExtractText(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			docs[i] = docxconv.Document{Index: i, Content: text, Path: path}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}
