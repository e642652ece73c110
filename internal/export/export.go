// Package export writes reports and record listings as markdown, CSV, JSON
// or Excel workbooks.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/dutyrep/internal/aggregate"
	"github.com/Tiliavir/dutyrep/internal/model"
)

// Format is an output format.
type Format string

const (
	Markdown Format = "md"
	CSV      Format = "csv"
	JSON     Format = "json"
	XLSX     Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{Markdown, CSV, JSON, XLSX}

// ErrUnsupportedFormat is returned by ParseFormat for unknown names.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Empty-state messages.
const (
	NoRecordsMessage   = "Nenhum registro encontrado para os filtros selecionados."
	NoDataMessage      = "Sem dados para o filtro atual"
	NoPersonnelMessage = "Nenhum dado de aluno encontrado para este filtro"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (want md, csv, json or xlsx)", ErrUnsupportedFormat, s)
}

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool { return f == XLSX }

// Exporter writes reports and records in one format.
type Exporter struct {
	format Format
	writer io.Writer
}

// NewExporter creates an exporter writing format to w.
func NewExporter(format Format, w io.Writer) *Exporter {
	return &Exporter{format: format, writer: w}
}

// ExportReport writes the full report.
func (e *Exporter) ExportReport(r *aggregate.Report) error {
	switch e.format {
	case Markdown:
		return e.reportMarkdown(r)
	case CSV:
		return e.reportCSV(r)
	case JSON:
		return e.encodeJSON(r)
	case XLSX:
		return writeReportXLSX(e.writer, r)
	}
	return fmt.Errorf("%w %q", ErrUnsupportedFormat, e.format)
}

// ExportRecords writes a plain record listing.
func (e *Exporter) ExportRecords(records []model.ServiceRecord) error {
	switch e.format {
	case Markdown:
		return e.recordsMarkdown(records)
	case CSV:
		w := csv.NewWriter(e.writer)
		writeRecordRows(w, records)
		w.Flush()
		return w.Error()
	case JSON:
		if records == nil {
			records = []model.ServiceRecord{}
		}
		return e.encodeJSON(records)
	case XLSX:
		return writeRecordsXLSX(e.writer, records)
	}
	return fmt.Errorf("%w %q", ErrUnsupportedFormat, e.format)
}

func (e *Exporter) encodeJSON(v any) error {
	enc := json.NewEncoder(e.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RecordHeader is the column order of record listings.
var RecordHeader = []string{"id", "type", "date", "start", "end", "duration_hours", "personnel"}

func recordRow(r model.ServiceRecord) []string {
	return []string{
		r.ID,
		string(r.Type),
		r.Date,
		r.StartTime,
		r.EndTime,
		formatNumber(r.DurationHours),
		r.Personnel,
	}
}

func writeRecordRows(w *csv.Writer, records []model.ServiceRecord) {
	w.Write(RecordHeader)
	for _, r := range records {
		w.Write(recordRow(r))
	}
}

func (e *Exporter) reportCSV(r *aggregate.Report) error {
	w := csv.NewWriter(e.writer)

	w.Write([]string{"# Summary"})
	w.Write([]string{"generated_at", r.GeneratedAt.Format(time.RFC3339)})
	w.Write([]string{"filter", r.Filter})
	w.Write([]string{"total_hours", formatNumber(r.Stats.TotalHours)})
	w.Write([]string{"total_records", strconv.Itoa(r.Stats.TotalRecords)})
	w.Write([]string{"distinct_personnel", strconv.Itoa(r.Stats.DistinctPersonnel)})
	w.Write([]string{"highlight_hours", string(r.Highlight), formatNumber(r.HighlightHours)})
	w.Write([]string{})

	for _, sec := range bucketSections(r) {
		w.Write([]string{"# " + sec.title})
		w.Write([]string{"label", sec.unit})
		for _, b := range sec.buckets {
			w.Write([]string{b.Label, formatNumber(b.Value)})
		}
		w.Write([]string{})
	}

	w.Write([]string{"# Records by week"})
	w.Write([]string{"week", "total", "new"})
	for _, wb := range r.ByWeek {
		w.Write([]string{strconv.Itoa(wb.Week), strconv.Itoa(wb.Total), strconv.Itoa(wb.New)})
	}
	w.Write([]string{})

	w.Write([]string{"# Records"})
	writeRecordRows(w, r.Records)

	w.Flush()
	return w.Error()
}

func (e *Exporter) reportMarkdown(r *aggregate.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Service report\n\n")
	fmt.Fprintf(&b, "Generated %s, filter: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"), r.Filter)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total hours | %s |\n", formatNumber(r.Stats.TotalHours))
	fmt.Fprintf(&b, "| Records | %d |\n", r.Stats.TotalRecords)
	fmt.Fprintf(&b, "| Distinct personnel | %d |\n", r.Stats.DistinctPersonnel)
	fmt.Fprintf(&b, "| %s hours | %s |\n\n", mdEscape(string(r.Highlight)), formatNumber(r.HighlightHours))

	for _, sec := range bucketSections(r) {
		fmt.Fprintf(&b, "## %s\n\n", sec.title)
		if len(sec.buckets) == 0 || r.Empty {
			fmt.Fprintf(&b, "%s\n\n", sec.empty)
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n|---|---:|\n", sec.label, sec.unit)
		for _, bk := range sec.buckets {
			fmt.Fprintf(&b, "| %s | %s |\n", mdEscape(bk.Label), formatNumber(bk.Value))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Records by week\n\n")
	if len(r.ByWeek) == 0 {
		fmt.Fprintf(&b, "%s\n\n", NoDataMessage)
	} else {
		b.WriteString("| Week | Total | New |\n|---:|---:|---:|\n")
		for _, wb := range r.ByWeek {
			fmt.Fprintf(&b, "| %d | %d | %d |\n", wb.Week, wb.Total, wb.New)
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(e.writer, b.String()); err != nil {
		return err
	}
	b.Reset()
	b.WriteString("## Records\n\n")
	if _, err := io.WriteString(e.writer, b.String()); err != nil {
		return err
	}
	return e.recordsMarkdown(r.Records)
}

func (e *Exporter) recordsMarkdown(records []model.ServiceRecord) error {
	var b strings.Builder
	if len(records) == 0 {
		b.WriteString(NoRecordsMessage + "\n")
	} else {
		b.WriteString("| ID | Type | Date | Start | End | Hours | Personnel |\n")
		b.WriteString("|---|---|---|---|---|---:|---|\n")
		for _, r := range records {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				mdEscape(r.ID), mdEscape(string(r.Type)), r.Date, r.StartTime, r.EndTime,
				formatNumber(r.DurationHours), mdEscape(r.Personnel))
		}
	}
	_, err := io.WriteString(e.writer, b.String())
	return err
}

// section is one bucketed view of a report.
type section struct {
	title   string
	label   string
	unit    string
	empty   string
	buckets []aggregate.Bucket
}

func bucketSections(r *aggregate.Report) []section {
	return []section{
		{"Records by category", "Category", "records", NoDataMessage, r.ByCategory},
		{"Hours by category", "Category", "hours", NoDataMessage, r.HoursByCategory},
		{"Records by weekday", "Weekday", "records", NoDataMessage, r.ByWeekday},
		{"Records by duration", "Range", "records", NoDataMessage, r.ByDuration},
		{"Hours per person (" + string(r.PersonnelCategory) + ")", "Person", "hours", NoPersonnelMessage, r.Personnel},
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// mdEscape keeps pipes in cell text from breaking table rows.
func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
