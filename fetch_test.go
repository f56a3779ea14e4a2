package ingest

import (
	"net/http"
	"testing"
)

func TestToDocumentContentType(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		want        ContentType
	}{
		{"html header", "https://example.com/page", "text/html", TypeHTML},
		{"html header with charset", "https://example.com/page", "text/html; charset=utf-8", TypeHTML},
		{"csv header", "https://example.com/data", "text/csv", TypeCSV},
		{"xls header", "https://example.com/data", "application/vnd.ms-excel", TypeXLS},
		{"xlsx header", "https://example.com/data", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", TypeXLSX},
		{"pdf header", "https://example.com/doc", "application/pdf", TypePDF},
		{"header case insensitive", "https://example.com/page", "Text/HTML", TypeHTML},
		{"header wins over extension", "https://example.com/report.pdf", "text/csv", TypeCSV},
		{"extension fallback html", "https://example.com/index.html", "", TypeHTML},
		{"extension fallback htm", "https://example.com/index.htm", "", TypeHTML},
		{"extension fallback csv", "https://example.com/data.csv", "", TypeCSV},
		{"extension fallback xls", "https://example.com/data.xls", "", TypeXLS},
		{"extension fallback xlsx", "https://example.com/data.xlsx", "", TypeXLSX},
		{"extension fallback pdf", "https://example.com/doc.pdf", "", TypePDF},
		{"extension ignores query", "https://example.com/data.csv?page=2", "", TypeCSV},
		{"unrecognized header falls back to extension", "https://example.com/data.csv", "application/octet-stream", TypeCSV},
		{"nothing recognized", "https://example.com/about", "application/octet-stream", TypeUnknown},
		{"no header no extension", "https://example.com/about", "", TypeUnknown},
	}

	var f Fetcher
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.contentType != "" {
				header.Set("Content-Type", tt.contentType)
			}
			doc := f.ToDocument(tt.url, []byte("body"), header)
			if doc.ContentType != tt.want {
				t.Errorf("ContentType = %q, want %q", doc.ContentType, tt.want)
			}
		})
	}
}

func TestToDocumentPreservesBody(t *testing.T) {
	var f Fetcher
	body := []byte("name,value\na,1\n")
	header := http.Header{}
	header.Set("Content-Type", "text/csv; charset=utf-8")

	doc := f.ToDocument("https://example.com/data.csv", body, header)

	if doc.URL != "https://example.com/data.csv" {
		t.Errorf("URL = %q", doc.URL)
	}
	if string(doc.Body) != string(body) {
		t.Errorf("Body = %q, want %q", doc.Body, body)
	}
	if doc.Charset != "utf-8" {
		t.Errorf("Charset = %q, want %q", doc.Charset, "utf-8")
	}
	if doc.FetchedAt.IsZero() {
		t.Error("FetchedAt is zero")
	}
}

func TestToDocumentUndecodableBody(t *testing.T) {
	var f Fetcher
	header := http.Header{}
	header.Set("Content-Type", "text/csv; charset=klingon")
	body := []byte{0xff, 0xfe, 0xfd}

	doc := f.ToDocument("https://example.com/data.csv", body, header)

	if doc.ContentType != TypeUnknown {
		t.Errorf("ContentType = %q, want %q", doc.ContentType, TypeUnknown)
	}
	if len(doc.Body) != len(body) {
		t.Error("raw bytes not preserved")
	}
}

func TestToDocumentUnknownCharsetValidUTF8(t *testing.T) {
	// An unknown charset label alone is not fatal when the bytes are
	// plain UTF-8: the parser can still use them.
	var f Fetcher
	header := http.Header{}
	header.Set("Content-Type", "text/csv; charset=klingon")

	doc := f.ToDocument("https://example.com/data.csv", []byte("a,b\n"), header)

	if doc.ContentType != TypeCSV {
		t.Errorf("ContentType = %q, want %q", doc.ContentType, TypeCSV)
	}
}
