package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved filesystem locations the service writes to
type Paths struct {
	WorkingDir string
	DataDir    string
	SQLitePath string
	LogFile    string
}

// GetPaths resolves the configured paths against the working directory
func (c *Config) GetPaths() (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	return &Paths{
		WorkingDir: wd,
		DataDir:    resolve(wd, c.Storage.DataDir),
		SQLitePath: resolve(wd, c.Storage.SQLitePath),
		LogFile:    resolve(wd, c.Logging.FilePath),
	}, nil
}

// EnsureDirectories creates the directories the configured storage driver needs
func (p *Paths) EnsureDirectories(driver string) error {
	var dirs []string
	switch driver {
	case StorageDriverFile:
		dirs = append(dirs, p.DataDir)
	case StorageDriverSQLite:
		dirs = append(dirs, filepath.Dir(p.SQLitePath))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LogPathResolution logs every resolved path at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Resolved paths",
		slog.String("working_dir", p.WorkingDir),
		slog.String("data_dir", p.DataDir),
		slog.String("sqlite_path", p.SQLitePath),
		slog.String("log_file", p.LogFile))
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
