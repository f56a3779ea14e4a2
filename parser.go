package ingest

// Parser extracts raw Records from Documents of the format it owns.
// Implementations must be stateless: documents may be processed
// concurrently and no locking happens around Parse.
type Parser interface {
	// Parse returns the Records extracted in document order (DOM order
	// for HTML, row order for tabular formats, page-then-row order for
	// PDF) together with one RecordError per unit that could not be
	// parsed. A malformed unit never aborts the document.
	//
	// The returned error is non-nil only when the whole Document is
	// unusable, such as a container that will not open. An empty or
	// irrelevant Document parses to zero Records and a nil error.
	Parse(doc Document) ([]Record, []RecordError, error)
}
