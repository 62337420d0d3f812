package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	docxconv "github.com/yshk0402/docx-converter"
	"github.com/yshk0402/docx-converter/docx"
	"github.com/yshk0402/docx-converter/excelize"
	"github.com/yshk0402/docx-converter/fs"
	convslog "github.com/yshk0402/docx-converter/slog"
	"github.com/yshk0402/docx-converter/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Configuration directory. Set before calling Run().
	ConfigDir string

	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	BatchService docxconv.BatchService
	ConfigStore  docxconv.ConfigStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	dir := defaultConfigDir()
	return &Main{
		ConfigDir: dir,
		DBPath:    defaultDBPath(dir),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docxconv"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docxconv --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCXCONV_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.BatchService = sqlite.NewBatchService(m.DB)
	m.ConfigStore = fs.NewConfigStore(m.ConfigDir)

	cfg, err := m.ConfigStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	policy := docxconv.DefaultBodyPolicy()
	if v := cfg.Settings.Validation; v.MinTextLength > 0 && v.MaxTextLength >= v.MinTextLength {
		policy.MinRunes = v.MinTextLength
		policy.MaxRunes = v.MaxTextLength
	}
	pipeline := &docxconv.Pipeline{Body: policy, Validator: docxconv.NewValidator(policy)}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps.DB = m.DB
	deps.Batches = m.BatchService
	deps.Config = m.ConfigStore
	deps.Processor = convslog.NewLoggingProcessor(pipeline, logger)
	deps.Extractor = docx.NewExtractor()
	deps.Exporter = excelize.NewExporter(cfg.Settings.Excel)

	return kongCtx.Run(deps)
}

func defaultConfigDir() string {
	if dir := os.Getenv("DOCXCONV_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docx_converter"
	}
	return filepath.Join(home, ".docx_converter")
}

func defaultDBPath(configDir string) string {
	if path := os.Getenv("DOCXCONV_DB"); path != "" {
		return path
	}
	_ = os.MkdirAll(configDir, 0755)
	return filepath.Join(configDir, "docxconv.db")
}
