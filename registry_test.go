package ingest

import (
	"errors"
	"reflect"
	"testing"
)

func TestRegistryRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(TypeCSV, NewTabularParser()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	err := r.Register(TypeCSV, NewTabularParser())
	if err == nil {
		t.Fatal("duplicate Register succeeded")
	}
	var dup *DuplicateParserError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %T, want *DuplicateParserError", err)
	}
	if dup.ContentType != TypeCSV {
		t.Errorf("ContentType = %q, want %q", dup.ContentType, TypeCSV)
	}
}

func TestRegistryRejectsUnknown(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(TypeUnknown, NewTabularParser()); err == nil {
		t.Fatal("Register accepted unknown content type")
	}
}

func TestRegistryRejectsNilParser(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(TypeCSV, nil); err == nil {
		t.Fatal("Register accepted nil parser")
	}
}

func TestRouterSelectReturnsRegisteredParser(t *testing.T) {
	r := NewRegistry()
	html := NewHTMLParser()
	tabular := NewTabularParser()
	if err := r.Register(TypeHTML, html); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(TypeCSV, tabular); err != nil {
		t.Fatal(err)
	}

	router := NewRouter(r)

	got, err := router.Select(TypeHTML)
	if err != nil {
		t.Fatalf("Select(html): %v", err)
	}
	if got != Parser(html) {
		t.Error("Select(html) returned a different parser than registered")
	}

	got, err = router.Select(TypeCSV)
	if err != nil {
		t.Fatalf("Select(csv): %v", err)
	}
	if got != Parser(tabular) {
		t.Error("Select(csv) returned a different parser than registered")
	}
}

func TestRouterSelectUnregistered(t *testing.T) {
	router := NewRouter(NewRegistry())

	for _, ct := range []ContentType{TypePDF, TypeUnknown} {
		p, err := router.Select(ct)
		if p != nil {
			t.Errorf("Select(%q) returned a parser for an empty registry", ct)
		}
		if !IsUnsupportedFormat(err) {
			t.Errorf("Select(%q) error = %v, want UnsupportedFormatError", ct, err)
		}
		var uf *UnsupportedFormatError
		if errors.As(err, &uf) && uf.ContentType != ct {
			t.Errorf("error ContentType = %q, want %q", uf.ContentType, ct)
		}
	}
}

func TestDefaultRegistryCoversAllFormats(t *testing.T) {
	got := DefaultRegistry().ContentTypes()
	want := []ContentType{TypeCSV, TypeHTML, TypePDF, TypeXLS, TypeXLSX}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ContentTypes = %v, want %v", got, want)
	}
}

func TestDefaultRegistrySharesTabularParser(t *testing.T) {
	router := NewRouter(DefaultRegistry())
	csv, _ := router.Select(TypeCSV)
	xls, _ := router.Select(TypeXLS)
	xlsx, _ := router.Select(TypeXLSX)
	if csv != xls || csv != xlsx {
		t.Error("CSV, XLS and XLSX should share one tabular parser instance")
	}
}
