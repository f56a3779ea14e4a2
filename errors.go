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
	"errors"
	"fmt"
)

// UnsupportedFormatError is returned by the router when no parser is
// registered for a content type. It is fatal for that one document and
// never retried: retrying changes nothing without a code change.
type UnsupportedFormatError struct {
	ContentType ContentType
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no parser registered for content type %q", e.ContentType)
}

// IsUnsupportedFormat reports whether the error is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}

// DuplicateParserError reports a second registration for a content type
// that already has a parser. Registration is a startup-time concern, so
// this surfaces configuration mistakes before any document is routed.
type DuplicateParserError struct {
	ContentType ContentType
}

func (e *DuplicateParserError) Error() string {
	return fmt.Sprintf("parser already registered for content type %q", e.ContentType)
}

// RecordError reports a single extraction unit that failed to parse.
// Position is the zero-based index of the unit in document order,
// counting failed units alongside successful ones. Collecting these
// instead of aborting gives partial-failure semantics: the document is
// still considered processed.
type RecordError struct {
	Position int
	Reason   string
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Position, e.Reason)
}

// NormalizationError reports a single record that failed validation or
// type coercion. The record is dropped from the item output; the batch
// continues.
type NormalizationError struct {
	Position int
	Field    string
	Reason   string
}

func (e NormalizationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("record %d: field %q: %s", e.Position, e.Field, e.Reason)
	}
	return fmt.Sprintf("record %d: %s", e.Position, e.Reason)
}
