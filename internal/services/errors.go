package services

import "errors"

// Library service errors
var (
	// Record errors
	ErrKPINotFound        = errors.New("kpi not found")
	ErrLayoutNotFound     = errors.New("layout not found")
	ErrStoryboardNotFound = errors.New("storyboard not found")
	ErrAssetNotFound      = errors.New("asset not found")

	// Library errors
	ErrInvalidAssetType = errors.New("invalid asset type")
	ErrInvalidTab       = errors.New("invalid tab")
	ErrInvalidSection   = errors.New("invalid section")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
