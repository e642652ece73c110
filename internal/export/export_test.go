package export_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/dutyrep/internal/aggregate"
	"github.com/Tiliavir/dutyrep/internal/export"
	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/seed"
)

var generated = time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)

func report(spec model.FilterSpec) *aggregate.Report {
	return aggregate.BuildReport(seed.Records(), spec, aggregate.DefaultReportOptions(), generated)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    export.Format
		wantErr bool
	}{
		{"md", export.Markdown, false},
		{"CSV", export.CSV, false},
		{" json ", export.JSON, false},
		{"xlsx", export.XLSX, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := export.ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, export.ErrUnsupportedFormat, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	assert.True(t, export.XLSX.Binary())
	assert.False(t, export.CSV.Binary())
}

func TestExportReportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewExporter(export.Markdown, &buf).ExportReport(report(model.FilterSpec{})))
	out := buf.String()

	assert.Contains(t, out, "# Service report")
	assert.Contains(t, out, "filter: all records")
	assert.Contains(t, out, "| Total hours | 206.93 |")
	assert.Contains(t, out, "| Records | 21 |")
	assert.Contains(t, out, "| Distinct personnel | 4 |")
	assert.Contains(t, out, "| Sentinela hours | 36.5 |")
	assert.Contains(t, out, "| Escala Alunos | 80.5 |")
	assert.Contains(t, out, "| OLÍVIA | 25 |")
	assert.Contains(t, out, "| 4 | 6 | 2 |")
	assert.Contains(t, out, "| 1 | Escala Alunos | 28/09/2025 |")
}

func TestExportReportMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := report(model.FilterSpec{Search: "ninguém"})
	require.NoError(t, export.NewExporter(export.Markdown, &buf).ExportReport(r))
	out := buf.String()

	assert.Contains(t, out, export.NoRecordsMessage)
	assert.Contains(t, out, export.NoPersonnelMessage)
	assert.Contains(t, out, export.NoDataMessage)
	assert.Contains(t, out, "| Total hours | 0 |")
}

func TestExportReportPersonnelEmptyOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewExporter(export.Markdown, &buf).ExportReport(report(model.FilterSpec{Type: "REDS"})))
	out := buf.String()
	assert.Contains(t, out, export.NoPersonnelMessage)
	assert.NotContains(t, out, export.NoRecordsMessage)
}

func TestExportReportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewExporter(export.CSV, &buf).ExportReport(report(model.FilterSpec{})))

	rd := csv.NewReader(&buf)
	rd.FieldsPerRecord = -1
	rows, err := rd.ReadAll()
	require.NoError(t, err)

	find := func(key string) []string {
		for _, r := range rows {
			if len(r) > 0 && r[0] == key {
				return r
			}
		}
		return nil
	}
	assert.Equal(t, []string{"total_hours", "206.93"}, find("total_hours"))
	assert.Equal(t, []string{"total_records", "21"}, find("total_records"))
	assert.Equal(t, []string{"highlight_hours", "Sentinela", "36.5"}, find("highlight_hours"))
	assert.Equal(t, []string{"Dom", "5"}, find("Dom"))
	assert.Equal(t, []string{"> 12h", "10"}, find("> 12h"))
	assert.Equal(t, export.RecordHeader, find("id"))
}

func TestExportReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewExporter(export.JSON, &buf).ExportReport(report(model.FilterSpec{})))

	var got struct {
		Filter string `json:"filter"`
		Stats  struct {
			TotalHours   float64 `json:"totalHours"`
			TotalRecords int     `json:"totalRecords"`
		} `json:"stats"`
		ByWeek  []aggregate.WeekBucket `json:"byWeek"`
		Records []model.ServiceRecord  `json:"records"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "all records", got.Filter)
	assert.InDelta(t, 206.93, got.Stats.TotalHours, 1e-9)
	assert.Equal(t, 21, got.Stats.TotalRecords)
	assert.Len(t, got.ByWeek, 5)
	assert.Len(t, got.Records, 21)
}

func TestExportReportXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewExporter(export.XLSX, &buf).ExportReport(report(model.FilterSpec{})))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{export.SummarySheet, export.RecordsSheet}, f.GetSheetList())

	rows, err := f.GetRows(export.RecordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 22)
	assert.Equal(t, export.RecordHeader, rows[0])
	assert.Equal(t, "Escala Alunos", rows[1][1])

	title, err := f.GetCellValue(export.SummarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Service report", title)

	summary, err := f.GetRows(export.SummarySheet)
	require.NoError(t, err)
	var sawTotal bool
	for _, r := range summary {
		if len(r) >= 2 && r[0] == "Total hours" {
			sawTotal = true
			assert.Equal(t, "206.93", r[1])
		}
	}
	assert.True(t, sawTotal, "summary sheet lacks total hours row")
}

func TestExportRecords(t *testing.T) {
	records := seed.Records()[:2]

	var md bytes.Buffer
	require.NoError(t, export.NewExporter(export.Markdown, &md).ExportRecords(records))
	assert.Equal(t, 4, strings.Count(md.String(), "\n"))

	var js bytes.Buffer
	require.NoError(t, export.NewExporter(export.JSON, &js).ExportRecords(nil))
	assert.Equal(t, "[]\n", js.String())

	var xl bytes.Buffer
	require.NoError(t, export.NewExporter(export.XLSX, &xl).ExportRecords(records))
	f, err := excelize.OpenReader(&xl)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.RecordsSheet}, f.GetSheetList())
}

func TestMarkdownEscapesPipes(t *testing.T) {
	var buf bytes.Buffer
	records := []model.ServiceRecord{{ID: "x", Type: "A|B", Date: "01/01/2025", StartTime: "08:00", EndTime: "09:00", DurationHours: 1}}
	require.NoError(t, export.NewExporter(export.Markdown, &buf).ExportRecords(records))
	assert.Contains(t, buf.String(), `A\|B`)
}
