package main

import (
	"fmt"
	"strings"

	docxconv "github.com/yshk0402/docx-converter"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	if c.ID == "" {
		return c.list(deps)
	}
	if c.Delete {
		return c.delete(deps)
	}
	return c.show(deps)
}

func (c *RunsCmd) list(deps *Dependencies) error {
	batches, err := deps.Batches.FindBatches(deps.Ctx, docxconv.BatchFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
		return err
	}

	if len(batches) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved runs. Use 'docxconv convert --save' to create one.")
		return nil
	}

	for _, b := range batches {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d docs, %d records, %d errors  %s\n",
			b.ID, b.Name, b.DocumentCount, b.RecordCount, b.ErrorCount,
			b.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

func (c *RunsCmd) show(deps *Dependencies) error {
	batch, err := deps.Batches.FindBatchByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s  %s  (%s)\n", batch.ID, batch.Name, strings.Join(batch.Columns, ", "))

	if c.Errors {
		errs, err := deps.Batches.FindBatchErrors(deps.Ctx, c.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
			return err
		}
		for _, pe := range errs {
			fmt.Fprintf(deps.Stdout, "doc %d [%s]: %s\n", pe.DocumentIndex+1, pe.Kind, pe.Message)
		}
		return nil
	}

	records, err := deps.Batches.FindBatchRecords(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
		return err
	}
	for _, rec := range records {
		values := make([]string, 0, len(batch.Columns))
		for _, column := range batch.Columns {
			values = append(values, rec.Values[column])
		}
		fmt.Fprintln(deps.Stdout, strings.Join(values, "  |  "))
	}

	return nil
}

func (c *RunsCmd) delete(deps *Dependencies) error {
	if err := deps.Batches.DeleteBatch(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docxconv.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
