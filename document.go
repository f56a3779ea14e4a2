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

// Package ingest turns documents fetched from the web (HTML, CSV, XLS,
// XLSX, PDF) into uniform structured items. A Document is routed to a
// format-specific Parser through a ContentType registry, the Parser
// extracts raw Records, and a Normalizer coerces those Records into
// typed Items handed to an output sink.
package ingest

import (
	"net/http"
	"time"
)

// ContentType identifies the format of a fetched document. It is a
// closed set: parser selection keys on these values and nothing is
// inferred downstream of the fetch boundary.
type ContentType string

const (
	TypeHTML    ContentType = "html"
	TypeCSV     ContentType = "csv"
	TypeXLS     ContentType = "xls"
	TypeXLSX    ContentType = "xlsx"
	TypePDF     ContentType = "pdf"
	TypeUnknown ContentType = "unknown"
)

// Document is an immutable snapshot of one fetched resource. It is
// created once per response, consumed by exactly one Parser invocation
// and discarded afterwards.
type Document struct {
	URL         string
	Body        []byte
	ContentType ContentType
	// Charset is the charset parameter of the Content-Type header, if
	// any. Parsers use it as a decode hint for text bodies.
	Charset   string
	FetchedAt time.Time
}

// Record is one raw extracted unit of a Document: a table row, an HTML
// detail block, a PDF cell group. Values are verbatim extracted
// strings, no coercion happens at this stage.
//
// Fields lists the field names in extraction order; Data maps each of
// them to its value. Normalizers depend on these names, so a parser
// change that renames fields breaks its paired normalizer.
type Record struct {
	Fields    []string
	Data      map[string]string
	SourceURL string
	FetchedAt time.Time
}

// Item is the externally consumable result of normalization.
type Item struct {
	Title   string
	Content map[string]any
	URL     string
}

// Response is what the crawling engine hands to the pipeline for one
// fetched page. Status is informational only: retry and backoff policy
// for failed fetches belongs to the engine, not to the pipeline.
type Response struct {
	URL    string
	Status int
	Body   []byte
	Header http.Header
}
