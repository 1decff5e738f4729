package exporter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"assetlib/pkg/contracts/domain"
)

// ErrUnsupportedFormat is returned for an unknown export format
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is an export file format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat parses a format name. An empty name selects XLSX.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename returns the download file name for an export in this format
func (f Format) Filename() string {
	return "asset-library." + string(f)
}

// Export writes snap to w in the given format
func Export(w io.Writer, f Format, snap domain.CatalogSnapshot) error {
	switch f {
	case FormatXLSX:
		return ExportXLSX(w, snap)
	case FormatCSV:
		return ExportCSV(w, snap)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// formatList joins list values into one cell
func formatList(values []string) string {
	return strings.Join(values, "; ")
}

// formatBool formats a boolean value for a cell
func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// formatOptionalBool leaves unset flags blank
func formatOptionalBool(b *bool) string {
	if b == nil {
		return ""
	}
	return formatBool(*b)
}

// accessLabel describes the access state of a storyboard
func accessLabel(s domain.Storyboard) string {
	if s.HasAccess {
		return "granted"
	}
	if s.AccessRequestStatus != "" {
		return string(s.AccessRequestStatus)
	}
	return "none"
}
