// Package exporter writes the asset catalog out as a spreadsheet.
//
// Two formats are supported:
//
// XLSX: an excelize workbook with one sheet per asset type (KPIs, Layouts,
// Storyboards), each with a header row.
//
// CSV: a single UTF-8 stream, prefixed with a BOM so Excel detects the
// encoding, holding every record with a leading type column.
//
// Example usage:
//
//	format, err := exporter.ParseFormat(r.URL.Query().Get("format"))
//	if err != nil {
//		return err
//	}
//	w.Header().Set("Content-Type", format.ContentType())
//	err = exporter.Export(w, format, catalog.Snapshot())
package exporter
