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
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"
)

// mimeContentTypes maps transport media types to content types. Exact
// match only, parameters already stripped by mime.ParseMediaType.
var mimeContentTypes = map[string]ContentType{
	"text/html": TypeHTML,
	"text/csv":  TypeCSV,
	"application/vnd.ms-excel": TypeXLS,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": TypeXLSX,
	"application/pdf": TypePDF,
}

// extContentTypes is the fallback table keyed by URL file extension.
var extContentTypes = map[string]ContentType{
	".html": TypeHTML,
	".htm":  TypeHTML,
	".csv":  TypeCSV,
	".xls":  TypeXLS,
	".xlsx": TypeXLSX,
	".pdf":  TypePDF,
}

// Fetcher is the boundary that converts a raw fetched response into a
// Document. It is pure, does no I/O and never fails: bodies it cannot
// make sense of become Documents with ContentType TypeUnknown, raw
// bytes preserved, and the decision is deferred downstream.
//
// The zero value is ready to use.
type Fetcher struct{}

// ToDocument builds a Document from one fetched response. Content type
// resolution is deterministic: an exact match of the Content-Type
// header media type wins; when the header is absent or unrecognized the
// URL file extension decides; otherwise the type is TypeUnknown. No
// body sniffing happens here or anywhere downstream.
//
// A text-typed body whose declared charset is unknown and whose bytes
// are not valid UTF-8 is undecodable: the Document is demoted to
// TypeUnknown so the router skips it instead of a parser choking on it.
func (Fetcher) ToDocument(rawURL string, body []byte, header http.Header) Document {
	ct, charset := resolveContentType(rawURL, header)

	doc := Document{
		URL:         rawURL,
		Body:        body,
		ContentType: ct,
		Charset:     charset,
		FetchedAt:   time.Now().UTC(),
	}

	if isTextType(ct) && undecodable(body, charset) {
		doc.ContentType = TypeUnknown
	}
	return doc
}

func resolveContentType(rawURL string, header http.Header) (ContentType, string) {
	var charset string

	if raw := header.Get("Content-Type"); raw != "" {
		mediaType, params, err := mime.ParseMediaType(raw)
		if err == nil {
			charset = params["charset"]
			if ct, ok := mimeContentTypes[strings.ToLower(mediaType)]; ok {
				return ct, charset
			}
		}
	}

	if ct, ok := extContentTypes[urlExtension(rawURL)]; ok {
		return ct, charset
	}
	return TypeUnknown, charset
}

// urlExtension returns the lowercased file extension of the URL path,
// ignoring query and fragment.
func urlExtension(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return strings.ToLower(path.Ext(u.Path))
	}
	return strings.ToLower(path.Ext(rawURL))
}

func isTextType(ct ContentType) bool {
	return ct == TypeHTML || ct == TypeCSV
}

// undecodable reports whether a text body can be ruled out entirely:
// the header names a charset no decoder exists for and the bytes are
// not plain UTF-8 either. Everything else is left for the parsers to
// decode with detection.
func undecodable(body []byte, charset string) bool {
	if len(body) == 0 || charset == "" {
		return false
	}
	return lookupEncoding(charset) == nil && !utf8.Valid(body)
}
