package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDirs creates the data directory layout.
func (p PathsConfig) EnsureDirs() error {
	for _, dir := range []string{p.DataDir, p.DownloadsDir, p.RawDir, p.CuratedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DownloadPath returns the path a downloaded source file is stored at.
func (p PathsConfig) DownloadPath(name string) string {
	return filepath.Join(p.DownloadsDir, name)
}

// RawCSVPath returns the raw-layer CSV path for a dataset.
func (p PathsConfig) RawCSVPath(name string) string {
	return filepath.Join(p.RawDir, name+".csv")
}

// CuratedCSVPath returns the curated-layer CSV path for a dataset or view.
func (p PathsConfig) CuratedCSVPath(name string) string {
	return filepath.Join(p.CuratedDir, name+".csv")
}
