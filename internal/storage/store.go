// Package storage persists the library's JSON documents behind a small
// key-value interface so the catalog logic stays storage-agnostic.
//
// Three drivers are provided: an in-process memory store (the default, one
// per session), a directory of JSON files, and a single-table SQLite
// database.
package storage

import (
	"context"
	"errors"
	"fmt"

	"assetlib/internal/config"
)

// Well-known document keys
const (
	KeyAssetState  = "asset_state"
	KeyKPIs        = "kpis"
	KeyLayouts     = "layouts"
	KeyStoryboards = "storyboards"
)

// ErrInvalidKey is returned for empty or malformed keys
var ErrInvalidKey = errors.New("invalid storage key")

// Store loads and saves JSON documents by key.
// Load reports found=false for a missing key; that is not an error.
type Store interface {
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Close() error
}

// Open creates the store selected by cfg.Driver. paths supplies resolved locations.
func Open(cfg config.StorageConfig, paths *config.Paths) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverMemory, "":
		return NewMemoryStore(), nil
	case config.StorageDriverFile:
		return NewFileStore(paths.DataDir)
	case config.StorageDriverSQLite:
		return OpenSQLite(paths.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
