package ingest

import (
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
)

func TestRowCells(t *testing.T) {
	word := func(s string, x float64) pdf.Text {
		return pdf.Text{S: s, X: x, FontSize: 10}
	}

	tests := []struct {
		name  string
		words []pdf.Text
		want  []string
	}{
		{
			name: "three columns with a two-word first cell",
			words: []pdf.Text{
				word("Base", 10),
				word("monetaria", 40),
				word("29/10/2025", 200),
				word("40.764", 350),
			},
			want: []string{"Base monetaria", "29/10/2025", "40.764"},
		},
		{
			name:  "single word",
			words: []pdf.Text{word("Reservas", 10)},
			want:  []string{"Reservas"},
		},
		{
			name: "empty string forces a word break",
			words: []pdf.Text{
				word("Tipo", 10),
				{S: ""},
				word("de", 35),
				word("cambio", 50),
			},
			want: []string{"Tipo de cambio"},
		},
		{
			name:  "no words",
			words: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rowCells(tt.words)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("rowCells() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPDFTableMalformedRow(t *testing.T) {
	word := func(s string, x float64) pdf.Text {
		return pdf.Text{S: s, X: x, FontSize: 10}
	}
	row := func(cells ...string) []pdf.Text {
		words := make([]pdf.Text, len(cells))
		for i, c := range cells {
			words[i] = word(c, float64(10+i*200))
		}
		return words
	}

	doc := Document{URL: "https://example.com/report.pdf", ContentType: TypePDF, FetchedAt: time.Now().UTC()}

	// One row wider than the header among well-formed ones: the bad
	// row is reported, the rest still extract.
	var tbl pdfTable
	for _, r := range [][]pdf.Text{
		row("detalle", "fecha", "valor"),
		row("Base monetaria", "29/10/2025", "40.764"),
		row("Reservas", "29/10/2025", "1.496,02", "stray"),
		row("Tipo de cambio", "29/10/2025", "1.045"),
	} {
		tbl.addRow(r, doc)
	}

	if len(tbl.records) != 2 {
		t.Errorf("got %d records, want 2", len(tbl.records))
	}
	if len(tbl.recErrs) != 1 {
		t.Fatalf("got %d record errors, want 1", len(tbl.recErrs))
	}
	if tbl.recErrs[0].Position != 1 {
		t.Errorf("error position = %d, want 1", tbl.recErrs[0].Position)
	}
	if got := tbl.records[1].Data["detalle"]; got != "Tipo de cambio" {
		t.Errorf("row after the malformed one = %q, want %q", got, "Tipo de cambio")
	}
}

func TestPDFParserEmptyBody(t *testing.T) {
	p := NewPDFParser()
	records, recErrs, err := p.Parse(Document{ContentType: TypePDF})
	if err != nil || len(records) != 0 || len(recErrs) != 0 {
		t.Errorf("empty body: records=%d errors=%d err=%v, want all empty", len(records), len(recErrs), err)
	}
}

func TestPDFParserGarbage(t *testing.T) {
	p := NewPDFParser()
	_, _, err := p.Parse(Document{
		ContentType: TypePDF,
		Body:        []byte("this is not a PDF"),
	})
	if err == nil {
		t.Fatal("expected a fatal error for a non-PDF body")
	}
}

func TestPDFParserFixture(t *testing.T) {
	body, err := os.ReadFile("testdata/test.pdf")
	if err != nil {
		t.Skip("testdata/test.pdf not present")
	}

	p := NewPDFParser()
	records, _, err := p.Parse(Document{
		URL:         "https://example.com/test.pdf",
		Body:        body,
		ContentType: TypePDF,
		FetchedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected at least one record from the fixture")
	}
	for i, rec := range records {
		if len(rec.Fields) == 0 {
			t.Errorf("record %d has no fields", i)
		}
	}
}
