package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"assetlib/pkg/contracts/domain"
)

// utf8BOM helps Excel recognise UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVHeaders are the columns of the CSV export. Columns that do not apply to
// a record's type are left blank.
var CSVHeaders = []string{
	"type", "id", "name", "description", "metrics", "visuals", "affiliates",
	"areas", "kpis", "pages", "created_by", "created_at", "favorite", "access",
}

// ExportCSV writes every record of snap to w, KPIs first, then layouts, then
// storyboards
func ExportCSV(w io.Writer, snap domain.CatalogSnapshot) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	records := make([][]string, 0, len(snap.KPIs)+len(snap.Layouts)+len(snap.Storyboards))
	for _, k := range snap.KPIs {
		records = append(records, []string{
			string(domain.AssetTypeKPI), k.ID, k.Name, k.Description,
			formatList(k.MetricIDs), formatList(k.VisualsAvailable),
			formatList(k.AffiliateApplicability), formatList(k.Areas),
			"", "", "", "", "", "",
		})
	}
	for _, l := range snap.Layouts {
		records = append(records, []string{
			string(domain.AssetTypeLayout), l.ID, l.Name, l.Description,
			"", "", "", "",
			formatList(l.KPIs), strconv.Itoa(l.NumberOfPages), l.CreatedBy, l.CreatedAt,
			formatBool(l.Favorite), "",
		})
	}
	for _, s := range snap.Storyboards {
		records = append(records, []string{
			string(domain.AssetTypeStoryboard), s.ID, s.Name, s.Description,
			"", "", formatList(s.ApplicableAffiliates), "",
			formatList(s.CoupledKPIs), "", s.CreatedBy, s.CreatedAt,
			"", accessLabel(s),
		})
	}

	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
