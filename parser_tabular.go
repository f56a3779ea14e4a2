package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// TabularParser extracts Records from CSV, XLS and XLSX documents. One
// instance serves all three registry entries; the first data row (or
// the first row of the first sheet) provides the verbatim field names
// for everything that follows.
type TabularParser struct{}

// NewTabularParser creates a new TabularParser.
func NewTabularParser() *TabularParser {
	return &TabularParser{}
}

func (p *TabularParser) Parse(doc Document) ([]Record, []RecordError, error) {
	if len(bytes.TrimSpace(doc.Body)) == 0 {
		return nil, nil, nil
	}

	switch doc.ContentType {
	case TypeCSV:
		return p.parseCSV(doc)
	case TypeXLSX:
		return p.parseXLSX(doc)
	case TypeXLS:
		return p.parseXLS(doc)
	default:
		return nil, nil, fmt.Errorf("tabular parser cannot handle %q documents", doc.ContentType)
	}
}

func (p *TabularParser) parseCSV(doc Document) ([]Record, []RecordError, error) {
	text := decodeText(doc.Body, doc.Charset)

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1 // width mismatches are judged against the header, not row one

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read CSV header: %w", err)
	}
	fields := cleanRow(header)

	var records []Record
	var recErrs []RecordError
	pos := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			recErrs = append(recErrs, RecordError{Position: pos, Reason: err.Error()})
			pos++
			continue
		}
		if rowEmpty(row) {
			continue
		}
		rec, rerr := rowRecord(fields, cleanRow(row), pos, doc)
		if rerr != nil {
			recErrs = append(recErrs, *rerr)
		} else {
			records = append(records, rec)
		}
		pos++
	}
	return records, recErrs, nil
}

func (p *TabularParser) parseXLSX(doc Document) ([]Record, []RecordError, error) {
	f, err := excelize.OpenReader(bytes.NewReader(doc.Body))
	if err != nil {
		return nil, nil, fmt.Errorf("open XLSX: %w", err)
	}
	defer f.Close()

	var records []Record
	var recErrs []RecordError
	var fields []string
	pos := 0

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			recErrs = append(recErrs, RecordError{Position: pos, Reason: fmt.Sprintf("sheet %q: %v", sheet, err)})
			continue
		}
		for _, row := range rows {
			if rowEmpty(row) {
				continue
			}
			if fields == nil {
				fields = cleanRow(row)
				continue
			}
			rec, rerr := rowRecord(fields, cleanRow(row), pos, doc)
			if rerr != nil {
				recErrs = append(recErrs, *rerr)
			} else {
				records = append(records, rec)
			}
			pos++
		}
	}
	return records, recErrs, nil
}

func (p *TabularParser) parseXLS(doc Document) ([]Record, []RecordError, error) {
	// extrame/xls opens by path only, so the body goes through a temp file.
	tmp, err := os.CreateTemp("", "ingest-*.xls")
	if err != nil {
		return nil, nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(doc.Body); err != nil {
		tmp.Close()
		return nil, nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	wb, err := xls.Open(tmpPath, "utf-8")
	if err != nil {
		return nil, nil, fmt.Errorf("open XLS: %w", err)
	}

	var records []Record
	var recErrs []RecordError
	var fields []string
	pos := 0

	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		for rowIdx := 0; rowIdx <= int(sheet.MaxRow); rowIdx++ {
			row := sheet.Row(rowIdx)
			if row == nil {
				continue
			}
			var cells []string
			for colIdx := 0; colIdx < row.LastCol(); colIdx++ {
				cells = append(cells, row.Col(colIdx))
			}
			if rowEmpty(cells) {
				continue
			}
			if fields == nil {
				fields = cleanRow(cells)
				continue
			}
			rec, rerr := rowRecord(fields, cleanRow(cells), pos, doc)
			if rerr != nil {
				recErrs = append(recErrs, *rerr)
			} else {
				records = append(records, rec)
			}
			pos++
		}
	}
	return records, recErrs, nil
}

// rowRecord maps one row of values onto the header fields. Rows shorter
// than the header get empty values for the trailing fields, which is
// how spreadsheets represent blank cells; rows wider than the header
// are malformed. Duplicate field names keep their first position and
// the last value.
func rowRecord(fields, values []string, pos int, doc Document) (Record, *RecordError) {
	if len(values) > len(fields) {
		return Record{}, &RecordError{
			Position: pos,
			Reason:   fmt.Sprintf("row has %d values for %d fields", len(values), len(fields)),
		}
	}

	rec := Record{
		Fields:    make([]string, 0, len(fields)),
		Data:      make(map[string]string, len(fields)),
		SourceURL: doc.URL,
		FetchedAt: doc.FetchedAt,
	}
	for i, name := range fields {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		if _, seen := rec.Data[name]; !seen {
			rec.Fields = append(rec.Fields, name)
		}
		rec.Data[name] = v
	}
	return rec, nil
}

func cleanRow(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = cleanCell(v)
	}
	return out
}

func rowEmpty(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
