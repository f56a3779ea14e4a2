// Copyright 2026 IngestKit
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package ingest

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Pipeline wires the fetch boundary, the parser router, a normalizer
// and an output sink into the per-document ingestion flow. Every
// component except the registry (read-only after construction) is
// stateless, so one Pipeline may process documents concurrently from
// multiple goroutines without locking. The pipeline itself does no I/O
// beyond the output sink: fetching, cancellation and timeouts belong to
// the calling engine.
type Pipeline struct {
	fetcher    Fetcher
	router     *Router
	normalizer Normalizer
	output     OutputPort
	log        zerolog.Logger
}

// Summary reports what one Document produced: the per-document
// {items, record errors, normalization errors} view.
type Summary struct {
	URL                 string
	ContentType         ContentType
	Items               int
	RecordErrors        []RecordError
	NormalizationErrors []NormalizationError
}

// New creates a Pipeline. Without options it routes through the
// built-in parsers, normalizes with the GenericNormalizer, writes JSON
// to stdout and stays silent.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		normalizer: NewGenericNormalizer(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.router == nil {
		p.router = NewRouter(DefaultRegistry())
	}
	if p.output == nil {
		p.output = NewJSONOutput(os.Stdout)
	}
	return p
}

// Process runs the full chain for one fetched response: to Document,
// route by content type, parse to Records, normalize to Items, emit.
//
// Per-unit failures are accumulated in the Summary and never abort the
// document. A non-nil error means the document as a whole was not
// processed: no parser is registered for its content type (check with
// IsUnsupportedFormat), the parser could not use the body at all, or
// the sink failed.
func (p *Pipeline) Process(resp Response) (*Summary, error) {
	doc := p.fetcher.ToDocument(resp.URL, resp.Body, resp.Header)

	parser, err := p.router.Select(doc.ContentType)
	if err != nil {
		p.log.Warn().
			Str("url", doc.URL).
			Str("content_type", string(doc.ContentType)).
			Msg("no parser registered, document skipped")
		return nil, fmt.Errorf("route %s: %w", doc.URL, err)
	}

	records, recErrs, err := parser.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", doc.URL, err)
	}
	for _, re := range recErrs {
		p.log.Debug().
			Str("url", doc.URL).
			Int("position", re.Position).
			Str("reason", re.Reason).
			Msg("extraction unit skipped")
	}

	items, normErrs := p.normalizer.Normalize(records)
	for _, ne := range normErrs {
		p.log.Debug().
			Str("url", doc.URL).
			Int("position", ne.Position).
			Str("field", ne.Field).
			Str("reason", ne.Reason).
			Msg("record dropped")
	}

	if err := p.output.Emit(items); err != nil {
		return nil, fmt.Errorf("emit items for %s: %w", doc.URL, err)
	}

	s := &Summary{
		URL:                 doc.URL,
		ContentType:         doc.ContentType,
		Items:               len(items),
		RecordErrors:        recErrs,
		NormalizationErrors: normErrs,
	}
	p.log.Info().
		Str("url", s.URL).
		Str("content_type", string(s.ContentType)).
		Int("items", s.Items).
		Int("record_errors", len(recErrs)).
		Int("normalization_errors", len(normErrs)).
		Msg("document processed")
	return s, nil
}
