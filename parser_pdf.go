package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParser extracts Records from the tabular text of PDF documents.
// Positioned words are grouped into rows by the pdf library and into
// cells by horizontal gaps; the first row of the document provides the
// field names and every later row becomes one Record, in page-then-row
// order.
type PDFParser struct{}

// NewPDFParser creates a new PDFParser.
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

func (p *PDFParser) Parse(doc Document) ([]Record, []RecordError, error) {
	if len(bytes.TrimSpace(doc.Body)) == 0 {
		return nil, nil, nil
	}

	rdr, err := pdf.NewReader(bytes.NewReader(doc.Body), int64(len(doc.Body)))
	if err != nil {
		return nil, nil, fmt.Errorf("open PDF: %w", err)
	}

	var tbl pdfTable
	for i := 1; i <= rdr.NumPage(); i++ {
		page := rdr.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			tbl.recErrs = append(tbl.recErrs, RecordError{
				Position: tbl.pos,
				Reason:   fmt.Sprintf("page %d: %v", i, err),
			})
			continue
		}
		for _, row := range rows {
			tbl.addRow(row.Content, doc)
		}
	}
	return tbl.records, tbl.recErrs, nil
}

// pdfTable accumulates the document-wide table: the first non-empty row
// anywhere in the document provides the field names, every later row
// becomes one Record or one RecordError.
type pdfTable struct {
	fields  []string
	pos     int
	records []Record
	recErrs []RecordError
}

func (t *pdfTable) addRow(words []pdf.Text, doc Document) {
	cells := rowCells(words)
	if rowEmpty(cells) {
		return
	}
	if t.fields == nil {
		t.fields = cells
		return
	}
	rec, rerr := rowRecord(t.fields, cells, t.pos, doc)
	if rerr != nil {
		t.recErrs = append(t.recErrs, *rerr)
	} else {
		t.records = append(t.records, rec)
	}
	t.pos++
}

// rowCells splits one positioned text row into cells. Words separated
// by a gap larger than the cell threshold start a new cell; smaller
// gaps, and the empty strings the pdf library emits at word boundaries,
// become spaces inside the current cell. Width is estimated from rune
// count and font size since the library reports no glyph metrics.
func rowCells(words []pdf.Text) []string {
	var cells []string
	var cur strings.Builder
	var lastX, lastWidth float64
	pendingBreak := false
	first := true

	for _, w := range words {
		if w.S == "" {
			pendingBreak = true
			continue
		}
		if !first {
			gap := w.X - (lastX + lastWidth)
			cellGap := w.FontSize * 1.5
			if cellGap < 12 {
				cellGap = 12
			}
			wordGap := w.FontSize * 0.2
			if wordGap < 1 {
				wordGap = 1
			}
			switch {
			case gap > cellGap:
				cells = append(cells, cleanCell(cur.String()))
				cur.Reset()
			case gap > wordGap || pendingBreak:
				cur.WriteString(" ")
			}
		}
		cur.WriteString(w.S)
		lastX = w.X
		lastWidth = float64(len([]rune(w.S))) * w.FontSize * 0.55
		first = false
		pendingBreak = false
	}
	if cur.Len() > 0 {
		cells = append(cells, cleanCell(cur.String()))
	}
	return cells
}
