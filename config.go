package docxconv

import "time"

// Config holds persisted user settings.
type Config struct {
	Version         string    `json:"version"`
	LastModified    time.Time `json:"lastModified"`
	FavoriteColumns []string  `json:"favoriteColumns"`
	Settings        Settings  `json:"settings"`
}

// Settings groups the tunable parts of Config.
type Settings struct {
	MaxPreviewLength int                `json:"maxPreviewLength"`
	DefaultColumns   []string           `json:"defaultColumns"`
	Excel            ExcelSettings      `json:"excelSettings"`
	Validation       ValidationSettings `json:"validation"`
}

// ExcelSettings controls spreadsheet rendering.
type ExcelSettings struct {
	SheetName           string  `json:"defaultSheetName"`
	ErrorHighlightColor string  `json:"errorHighlightColor"`
	MinColumnWidth      float64 `json:"minColumnWidth"`
	MaxColumnWidth      float64 `json:"maxColumnWidth"`
}

// ValidationSettings controls the body-length policy.
type ValidationSettings struct {
	MinTextLength int `json:"minTextLength"`
	MaxTextLength int `json:"maxTextLength"`
}

// DefaultConfig returns the configuration used when none has been saved.
func DefaultConfig() *Config {
	return &Config{
		Version:         "1.0.0",
		FavoriteColumns: []string{ColumnID, ColumnBody},
		Settings: Settings{
			MaxPreviewLength: 500,
			DefaultColumns:   []string{ColumnID, ColumnBody},
			Excel: ExcelSettings{
				SheetName:           "データ",
				ErrorHighlightColor: "FFE7E6",
				MinColumnWidth:      10,
				MaxColumnWidth:      50,
			},
			Validation: ValidationSettings{
				MinTextLength: 150,
				MaxTextLength: 200,
			},
		},
	}
}

// ConfigStore persists user configuration.
type ConfigStore interface {
	// Load returns the stored configuration, or defaults if none exists
	// or the stored file is unreadable.
	Load() (*Config, error)

	// Save stores the configuration, stamping LastModified.
	Save(cfg *Config) error

	// UpdateFavorites replaces the favorite column list, dropping
	// duplicates while preserving order.
	UpdateFavorites(columns []string) error
}
