package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BcraNormalizer normalizes the "principales variables" records scraped
// from www.bcra.gob.ar. It understands three fields: "detalle" becomes
// the title, "fecha" (DD/MM/YYYY) is coerced to ISO 8601, and "valor"
// (es-AR notation, "." thousands and "," decimal separator) to float64.
// A record missing any of them, or carrying values that do not parse,
// is dropped with a NormalizationError.
type BcraNormalizer struct{}

// NewBcraNormalizer creates a new BcraNormalizer.
func NewBcraNormalizer() *BcraNormalizer {
	return &BcraNormalizer{}
}

func (n *BcraNormalizer) Normalize(records []Record) ([]Item, []NormalizationError) {
	var items []Item
	var errs []NormalizationError

	for i, rec := range records {
		detalle := rec.Data["detalle"]
		fecha := rec.Data["fecha"]
		valor := rec.Data["valor"]

		if missing := firstMissing(rec.Data, "detalle", "fecha", "valor"); missing != "" {
			errs = append(errs, NormalizationError{Position: i, Field: missing, Reason: "missing required field"})
			continue
		}

		fechaISO, err := parseFecha(fecha)
		if err != nil {
			errs = append(errs, NormalizationError{Position: i, Field: "fecha", Reason: err.Error()})
			continue
		}
		valorNum, err := parseValor(valor)
		if err != nil {
			errs = append(errs, NormalizationError{Position: i, Field: "valor", Reason: err.Error()})
			continue
		}

		items = append(items, Item{
			Title: detalle,
			Content: map[string]any{
				"fecha": fechaISO,
				"valor": valorNum,
			},
			URL: rec.SourceURL,
		})
	}
	return items, errs
}

func firstMissing(data map[string]string, fields ...string) string {
	for _, f := range fields {
		if strings.TrimSpace(data[f]) == "" {
			return f
		}
	}
	return ""
}

func parseFecha(s string) (string, error) {
	t, err := time.Parse("02/01/2006", strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%q is not a DD/MM/YYYY date", s)
	}
	return t.Format("2006-01-02"), nil
}

// parseValor parses es-AR numbers: when a comma is present it is the
// decimal separator and dots are thousands separators ("1.496,02");
// with no comma the dots are thousands separators only ("40.764").
func parseValor(s string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}
