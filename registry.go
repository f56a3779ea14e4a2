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
	"sort"
)

// Registry is the static ContentType-to-Parser table. It is populated
// by explicit Register calls at process start and read-only afterwards;
// supporting a new format means constructing a parser and adding one
// entry, no existing code changes.
type Registry struct {
	parsers map[ContentType]Parser
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[ContentType]Parser)}
}

// Register adds a parser for a content type. A duplicate content type
// is a configuration error reported here, at startup, rather than a
// last-registration-wins surprise at routing time. TypeUnknown cannot
// be registered: it marks documents the pipeline must skip.
func (r *Registry) Register(ct ContentType, p Parser) error {
	if p == nil {
		return fmt.Errorf("register %q: nil parser", ct)
	}
	if ct == TypeUnknown {
		return fmt.Errorf("register %q: unknown content type is not routable", ct)
	}
	if _, exists := r.parsers[ct]; exists {
		return &DuplicateParserError{ContentType: ct}
	}
	r.parsers[ct] = p
	return nil
}

// ContentTypes returns the registered content types in sorted order.
func (r *Registry) ContentTypes() []ContentType {
	cts := make([]ContentType, 0, len(r.parsers))
	for ct := range r.parsers {
		cts = append(cts, ct)
	}
	sort.Slice(cts, func(i, j int) bool { return cts[i] < cts[j] })
	return cts
}

// DefaultRegistry builds a registry with the built-in parsers: HTML,
// the tabular parser for CSV/XLS/XLSX, and PDF.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	tabular := NewTabularParser()
	mustRegister(r, TypeHTML, NewHTMLParser())
	mustRegister(r, TypeCSV, tabular)
	mustRegister(r, TypeXLS, tabular)
	mustRegister(r, TypeXLSX, tabular)
	mustRegister(r, TypePDF, NewPDFParser())
	return r
}

// mustRegister backs builtin wiring, where a duplicate key can only be
// a programming error.
func mustRegister(r *Registry, ct ContentType, p Parser) {
	if err := r.Register(ct, p); err != nil {
		panic(err)
	}
}

// Router dispatches documents to parsers by exact content type match.
type Router struct {
	registry *Registry
}

// NewRouter returns a router over the given registry.
func NewRouter(reg *Registry) *Router {
	return &Router{registry: reg}
}

// Select returns the parser registered for the content type. There is
// no fuzzy matching and no guessed default: an unregistered type yields
// an UnsupportedFormatError and the caller decides whether to skip the
// document or fall back.
func (r *Router) Select(ct ContentType) (Parser, error) {
	p, ok := r.registry.parsers[ct]
	if !ok {
		return nil, &UnsupportedFormatError{ContentType: ct}
	}
	return p, nil
}
