package ingest

// Normalizer transforms extracted Records into typed Items: field-name
// remapping, type coercion, validation. A Record yields at most one
// Item; a Record that fails validation yields zero Items and one
// NormalizationError. Implementations must depend only on Record.Data
// keys they declare to understand, never on parser internals, so any
// normalizer is substitutable for any parser's output. They must also
// be stateless: documents are processed concurrently without locking.
type Normalizer interface {
	Normalize(records []Record) ([]Item, []NormalizationError)
}

// GenericNormalizer is the universal fallback: no semantic coercion,
// Record.Data carried into Item.Content as-is, the title derived from
// the first non-empty field in extraction order. Every well-formed
// Record yields exactly one Item even with no site-specific knowledge.
type GenericNormalizer struct{}

// NewGenericNormalizer creates a new GenericNormalizer.
func NewGenericNormalizer() *GenericNormalizer {
	return &GenericNormalizer{}
}

func (n *GenericNormalizer) Normalize(records []Record) ([]Item, []NormalizationError) {
	var items []Item
	var errs []NormalizationError

	for i, rec := range records {
		if len(rec.Fields) == 0 {
			errs = append(errs, NormalizationError{Position: i, Reason: "record has no fields"})
			continue
		}

		content := make(map[string]any, len(rec.Fields))
		title := ""
		for _, f := range rec.Fields {
			v := rec.Data[f]
			content[f] = v
			if title == "" && v != "" {
				title = v
			}
		}
		items = append(items, Item{Title: title, Content: content, URL: rec.SourceURL})
	}
	return items, errs
}
