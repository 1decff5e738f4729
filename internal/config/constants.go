package config

import "time"

// Application constants
const (
	// Application Info
	AppName = "assetlib"

	// EnvPrefix namespaces every environment variable (ASSETLIB_SERVER_PORT, ...)
	EnvPrefix = "ASSETLIB"

	// Server
	DefaultPort           = 8080
	DefaultRequestTimeout = 30 * time.Second

	// Rate Limiting
	DefaultRateLimitRPS   = 100
	DefaultRateLimitBurst = 50

	// Storage drivers
	StorageDriverMemory = "memory"
	StorageDriverFile   = "file"
	StorageDriverSQLite = "sqlite"

	// File Paths (relative to the working directory unless absolute)
	DefaultDataDir    = "data"
	DefaultSQLitePath = "data/assetlib.db"
	DefaultLogFile    = "logs/app.log"

	// Preview
	DefaultMaxPreviewSessions = 512
)
