package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/dutyrep/internal/aggregate"
	"github.com/Tiliavir/dutyrep/internal/model"
)

// Sheet names of the report workbook.
const (
	SummarySheet = "Resumo"
	RecordsSheet = "Registros"
)

type workbook struct {
	f      *excelize.File
	header int
	bold   int
	colors map[model.Category]int
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1E3A8A"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		f.Close()
		return nil, err
	}
	wb := &workbook{f: f, header: header, bold: bold, colors: map[model.Category]int{}}
	for _, c := range model.KnownCategories {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{c.Color()}, Pattern: 1},
			Font: &excelize.Font{Color: "#FFFFFF"},
		})
		if err != nil {
			f.Close()
			return nil, err
		}
		wb.colors[c] = id
	}
	return wb, nil
}

// sheet creates name and drops the default sheet once another exists.
func (wb *workbook) sheet(name string) error {
	idx, err := wb.f.NewSheet(name)
	if err != nil {
		return err
	}
	if wb.f.GetSheetName(0) == "Sheet1" && name != "Sheet1" {
		wb.f.SetActiveSheet(idx)
		if err := wb.f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}
	return nil
}

func (wb *workbook) row(sheet string, row int, values ...any) error {
	c, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return wb.f.SetSheetRow(sheet, c, &values)
}

func (wb *workbook) headerRow(sheet string, row int, values ...any) error {
	if err := wb.row(sheet, row, values...); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(values), row)
	return wb.f.SetCellStyle(sheet, first, last, wb.header)
}

func (wb *workbook) records(records []model.ServiceRecord) error {
	if err := wb.sheet(RecordsSheet); err != nil {
		return err
	}
	header := make([]any, len(RecordHeader))
	for i, h := range RecordHeader {
		header[i] = h
	}
	if err := wb.headerRow(RecordsSheet, 1, header...); err != nil {
		return err
	}
	wb.f.SetColWidth(RecordsSheet, "A", "A", 40)
	wb.f.SetColWidth(RecordsSheet, "B", "B", 18)
	wb.f.SetColWidth(RecordsSheet, "C", "F", 14)
	wb.f.SetColWidth(RecordsSheet, "G", "G", 32)
	for i, r := range records {
		row := i + 2
		if err := wb.row(RecordsSheet, row,
			r.ID, string(r.Type), r.Date, r.StartTime, r.EndTime, r.DurationHours, r.Personnel); err != nil {
			return err
		}
		if style, ok := wb.colors[r.Type]; ok {
			c, _ := excelize.CoordinatesToCellName(2, row)
			wb.f.SetCellStyle(RecordsSheet, c, c, style)
		}
	}
	return nil
}

func (wb *workbook) summary(r *aggregate.Report) error {
	s := SummarySheet
	if err := wb.sheet(s); err != nil {
		return err
	}
	wb.f.SetColWidth(s, "A", "A", 36)
	wb.f.SetColWidth(s, "B", "C", 14)

	wb.f.SetCellValue(s, "A1", "Service report")
	wb.f.SetCellStyle(s, "A1", "A1", wb.bold)
	rows := [][]any{
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{"Filter", r.Filter},
		{"Total hours", r.Stats.TotalHours},
		{"Records", r.Stats.TotalRecords},
		{"Distinct personnel", r.Stats.DistinctPersonnel},
		{string(r.Highlight) + " hours", r.HighlightHours},
	}
	row := 2
	for _, v := range rows {
		if err := wb.row(s, row, v...); err != nil {
			return err
		}
		row++
	}

	for _, sec := range bucketSections(r) {
		row++
		wb.f.SetCellValue(s, cellName(1, row), sec.title)
		wb.f.SetCellStyle(s, cellName(1, row), cellName(1, row), wb.bold)
		row++
		if len(sec.buckets) == 0 || r.Empty {
			wb.f.SetCellValue(s, cellName(1, row), sec.empty)
			row++
			continue
		}
		if err := wb.headerRow(s, row, sec.label, sec.unit); err != nil {
			return err
		}
		row++
		for _, b := range sec.buckets {
			if err := wb.row(s, row, b.Label, b.Value); err != nil {
				return err
			}
			if style, ok := wb.colors[model.Category(b.Label)]; ok && strings.Contains(sec.label, "Category") {
				wb.f.SetCellStyle(s, cellName(1, row), cellName(1, row), style)
			}
			row++
		}
	}

	row++
	wb.f.SetCellValue(s, cellName(1, row), "Records by week")
	wb.f.SetCellStyle(s, cellName(1, row), cellName(1, row), wb.bold)
	row++
	if err := wb.headerRow(s, row, "week", "total", "new"); err != nil {
		return err
	}
	row++
	for _, w := range r.ByWeek {
		if err := wb.row(s, row, fmt.Sprintf("Semana %d", w.Week), w.Total, w.New); err != nil {
			return err
		}
		row++
	}
	return nil
}

func cellName(col, row int) string {
	c, _ := excelize.CoordinatesToCellName(col, row)
	return c
}

func writeReportXLSX(w io.Writer, r *aggregate.Report) error {
	wb, err := newWorkbook()
	if err != nil {
		return fmt.Errorf("creating workbook: %w", err)
	}
	defer wb.f.Close()
	if err := wb.summary(r); err != nil {
		return fmt.Errorf("writing summary sheet: %w", err)
	}
	if err := wb.records(r.Records); err != nil {
		return fmt.Errorf("writing records sheet: %w", err)
	}
	if idx, err := wb.f.GetSheetIndex(SummarySheet); err == nil {
		wb.f.SetActiveSheet(idx)
	}
	return wb.f.Write(w)
}

func writeRecordsXLSX(w io.Writer, records []model.ServiceRecord) error {
	wb, err := newWorkbook()
	if err != nil {
		return fmt.Errorf("creating workbook: %w", err)
	}
	defer wb.f.Close()
	if err := wb.records(records); err != nil {
		return fmt.Errorf("writing records sheet: %w", err)
	}
	return wb.f.Write(w)
}
