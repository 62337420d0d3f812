// Package fs provides file-based persistence for user configuration.
package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	docxconv "github.com/yshk0402/docx-converter"
)

// backupKeepCount is how many timestamped config backups are retained.
const backupKeepCount = 5

// Ensure ConfigStore implements docxconv.ConfigStore at compile time.
var _ docxconv.ConfigStore = (*ConfigStore)(nil)

// ConfigStore persists configuration as JSON under a base directory.
// Every save first backs up the current file; a corrupt config file is
// moved aside rather than overwritten, so its content stays inspectable.
type ConfigStore struct {
	baseDir string
}

// NewConfigStore creates a ConfigStore rooted at baseDir.
func NewConfigStore(baseDir string) *ConfigStore {
	return &ConfigStore{baseDir: baseDir}
}

func (s *ConfigStore) configPath() string {
	return filepath.Join(s.baseDir, "config.json")
}

func (s *ConfigStore) backupDir() string {
	return filepath.Join(s.baseDir, "backups")
}

// Load returns the stored configuration. A missing file yields defaults;
// an unreadable file is quarantined and defaults are returned.
func (s *ConfigStore) Load() (*docxconv.Config, error) {
	raw, err := os.ReadFile(s.configPath())
	if errors.Is(err, os.ErrNotExist) {
		return docxconv.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg docxconv.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		if qerr := s.quarantine(); qerr != nil {
			return nil, fmt.Errorf("quarantine corrupt config: %w", qerr)
		}
		return docxconv.DefaultConfig(), nil
	}
	return &cfg, nil
}

// Save stores the configuration, backing up the previous file first and
// stamping LastModified.
func (s *ConfigStore) Save(cfg *docxconv.Config) error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := s.backup(); err != nil {
		return fmt.Errorf("backup config: %w", err)
	}

	cfg.LastModified = time.Now().UTC()
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.configPath(), raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// UpdateFavorites replaces the favorite column list, dropping duplicates
// while preserving order.
func (s *ConfigStore) UpdateFavorites(columns []string) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(columns))
	deduped := make([]string, 0, len(columns))
	for _, column := range columns {
		if seen[column] {
			continue
		}
		seen[column] = true
		deduped = append(deduped, column)
	}

	cfg.FavoriteColumns = deduped
	return s.Save(cfg)
}

// backup copies the current config file into the backup directory and
// prunes backups beyond backupKeepCount.
func (s *ConfigStore) backup() error {
	raw, err := os.ReadFile(s.configPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.backupDir(), 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("config_%s.json", time.Now().UTC().Format("20060102_150405.000000000"))
	if err := os.WriteFile(filepath.Join(s.backupDir(), name), raw, 0o644); err != nil {
		return err
	}
	return s.pruneBackups()
}

func (s *ConfigStore) pruneBackups() error {
	matches, err := filepath.Glob(filepath.Join(s.backupDir(), "config_*.json"))
	if err != nil {
		return err
	}
	if len(matches) <= backupKeepCount {
		return nil
	}
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-backupKeepCount] {
		if err := os.Remove(old); err != nil {
			return err
		}
	}
	return nil
}

// quarantine moves a corrupt config file aside.
func (s *ConfigStore) quarantine() error {
	name := fmt.Sprintf("corrupt_config_%s.json", time.Now().UTC().Format("20060102_150405.000000000"))
	return os.Rename(s.configPath(), filepath.Join(s.baseDir, name))
}
