package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"assetlib/pkg/contracts/domain"
)

// Sheet names of the XLSX export
const (
	SheetKPIs        = "KPIs"
	SheetLayouts     = "Layouts"
	SheetStoryboards = "Storyboards"
)

var (
	kpiHeaders = []string{
		"ID", "Name", "Description", "Calculation", "Business Questions",
		"Metrics", "Visuals", "Affiliates", "Areas", "Requested", "Owned",
	}
	layoutHeaders = []string{
		"ID", "Name", "Description", "Pages", "KPIs", "Created By",
		"Created At", "Favorite", "Shareable Link",
	}
	storyboardHeaders = []string{
		"ID", "Name", "Description", "Coupled KPIs", "Time Range", "Region",
		"Segment", "Affiliates", "Created By", "Created At", "Access",
	}
)

type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
}

// ExportXLSX writes snap as a workbook with one sheet per asset type
func ExportXLSX(w io.Writer, snap domain.CatalogSnapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []sheet{
		{SheetKPIs, kpiHeaders, kpiRows(snap.KPIs)},
		{SheetLayouts, layoutHeaders, layoutRows(snap.Layouts)},
		{SheetStoryboards, storyboardHeaders, storyboardRows(snap.Storyboards)},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", s.name, err)
		}

		if err := writeSheet(f, s, headerStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]interface{}, len(s.headers))
	for i, h := range s.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", s.name, err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(s.headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", s.name, err)
	}

	for i, row := range s.rows {
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", s.name, i+1, err)
		}
	}
	return nil
}

func kpiRows(kpis []domain.KPI) [][]interface{} {
	rows := make([][]interface{}, 0, len(kpis))
	for _, k := range kpis {
		rows = append(rows, []interface{}{
			k.ID, k.Name, k.Description, k.Calculation,
			formatList(k.BusinessQuestions), formatList(k.MetricIDs),
			formatList(k.VisualsAvailable), formatList(k.AffiliateApplicability),
			formatList(k.Areas), formatOptionalBool(k.Requested), formatOptionalBool(k.Owned),
		})
	}
	return rows
}

func layoutRows(layouts []domain.Layout) [][]interface{} {
	rows := make([][]interface{}, 0, len(layouts))
	for _, l := range layouts {
		rows = append(rows, []interface{}{
			l.ID, l.Name, l.Description, l.NumberOfPages, formatList(l.KPIs),
			l.CreatedBy, l.CreatedAt, formatBool(l.Favorite), l.ShareableLink,
		})
	}
	return rows
}

func storyboardRows(storyboards []domain.Storyboard) [][]interface{} {
	rows := make([][]interface{}, 0, len(storyboards))
	for _, s := range storyboards {
		rows = append(rows, []interface{}{
			s.ID, s.Name, s.Description, formatList(s.CoupledKPIs),
			s.Filters.TimeRange, s.Filters.Region, s.Filters.Segment,
			formatList(s.ApplicableAffiliates), s.CreatedBy, s.CreatedAt, accessLabel(s),
		})
	}
	return rows
}
