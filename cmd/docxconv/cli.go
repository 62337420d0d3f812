package main

import (
	"context"
	"io"

	docxconv "github.com/yshk0402/docx-converter"
	"github.com/yshk0402/docx-converter/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Processor docxconv.Processor
	Extractor docxconv.TextExtractor
	Exporter  docxconv.RecordExporter
	Config    docxconv.ConfigStore
	Batches   docxconv.BatchService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Convert   ConvertCmd   `cmd:"" help:"Convert documents to a spreadsheet"`
	Columns   ColumnsCmd   `cmd:"" help:"Show the columns detected in a document"`
	Favorites FavoritesCmd `cmd:"" help:"Show or replace favorite columns"`
	Runs      RunsCmd      `cmd:"" help:"List or inspect saved conversion runs"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	Files       []string `arg:"" help:"Input document files, one per record"`
	Output      string   `short:"o" default:"output.xlsx" help:"Output spreadsheet path"`
	Columns     []string `short:"c" help:"Columns to extract (repeatable); detected from the first document when omitted"`
	Save        bool     `short:"s" help:"Save the run so it can be reloaded later"`
	Name        string   `help:"Name for the saved run (defaults to the output filename)"`
	Concurrency int      `default:"4" help:"Concurrent file read limit"`
}

// ColumnsCmd is the "columns" subcommand.
type ColumnsCmd struct {
	File string `arg:"" help:"Document file to inspect"`
}

// FavoritesCmd is the "favorites" subcommand. Without arguments it shows
// the current favorites; with arguments it replaces them.
type FavoritesCmd struct {
	Columns []string `arg:"" optional:"" help:"New favorite column list"`
}

// RunsCmd is the "runs" subcommand. Without an ID it lists saved runs;
// with an ID it shows the run's records.
type RunsCmd struct {
	ID     string `arg:"" optional:"" help:"Run ID to inspect"`
	Errors bool   `help:"Show the run's processing errors"`
	Delete bool   `help:"Delete the run"`
}
