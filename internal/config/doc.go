// Package config provides centralized configuration management for the asset
// library service. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ASSETLIB_<SECTION>_<FIELD>:
//
//	ASSETLIB_SERVER_PORT=8080
//	ASSETLIB_LOGGING_LEVEL=debug
//	ASSETLIB_STORAGE_DRIVER=sqlite
//	ASSETLIB_STORAGE_SQLITE_PATH=/var/lib/assetlib/assetlib.db
//	ASSETLIB_PREVIEW_MAX_SESSIONS=1024
//
// ASSETLIB_CONFIG points at an explicit YAML file; otherwise config.yaml and
// configs/config.yaml are tried.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Testing
//
// Use config.Default() for a configuration that needs no environment or files.
package config
