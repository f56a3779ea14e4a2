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
	"bytes"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
)

// HTMLParser extracts Records from HTML documents. Pages with tables
// yield one Record per data row, field names taken verbatim from the
// header cells (th elements, or the first row when there are none) and
// rows emitted in DOM order. Pages without tables yield a single
// detail-block Record with "title" and "text" fields, the text being
// the page content rendered as markdown.
type HTMLParser struct {
	fields []string
}

// HTMLOption configures an HTMLParser.
type HTMLOption func(*HTMLParser)

// WithTableFields fixes the field names for table extraction instead of
// reading them from a header row. Sites whose tables carry no usable
// header (a known layout with unlabeled columns) are parsed with this.
func WithTableFields(fields ...string) HTMLOption {
	return func(p *HTMLParser) {
		p.fields = fields
	}
}

// NewHTMLParser creates a new HTMLParser.
func NewHTMLParser(opts ...HTMLOption) *HTMLParser {
	p := &HTMLParser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *HTMLParser) Parse(doc Document) ([]Record, []RecordError, error) {
	if len(bytes.TrimSpace(doc.Body)) == 0 {
		return nil, nil, nil
	}

	text := decodeText(doc.Body, doc.Charset)
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, nil, fmt.Errorf("parse HTML: %w", err)
	}

	rows := gq.Find("tr")
	if rows.Length() > 0 {
		records, recErrs := p.parseTableRows(rows, doc)
		return records, recErrs, nil
	}
	return p.parseDetailBlock(gq, text, doc)
}

func (p *HTMLParser) parseTableRows(rows *goquery.Selection, doc Document) ([]Record, []RecordError) {
	var records []Record
	var recErrs []RecordError
	fields := p.fields
	pos := 0

	rows.Each(func(_ int, tr *goquery.Selection) {
		if fields == nil {
			if ths := tr.Find("th"); ths.Length() > 0 {
				fields = cellTexts(ths)
				return
			}
		}

		cells := cellTexts(tr.Find("td"))
		if rowEmpty(cells) {
			return
		}
		if fields == nil {
			// No header row in the table: the first data row names the fields.
			fields = cells
			return
		}

		rec, rerr := rowRecord(fields, cells, pos, doc)
		if rerr != nil {
			recErrs = append(recErrs, *rerr)
		} else {
			records = append(records, rec)
		}
		pos++
	})
	return records, recErrs
}

// parseDetailBlock handles table-less pages: the whole page becomes one
// Record carrying the document title and the readable text as markdown.
func (p *HTMLParser) parseDetailBlock(gq *goquery.Document, rawHTML string, doc Document) ([]Record, []RecordError, error) {
	title := cleanCell(gq.Find("title").First().Text())

	md, err := htmlToMarkdown(rawHTML)
	if err != nil {
		return nil, []RecordError{{Position: 0, Reason: fmt.Sprintf("render page text: %v", err)}}, nil
	}
	text := cleanText(md)

	if title == "" && text == "" {
		return nil, nil, nil
	}

	rec := Record{
		Fields:    []string{"title", "text"},
		Data:      map[string]string{"title": title, "text": text},
		SourceURL: doc.URL,
		FetchedAt: doc.FetchedAt,
	}
	return []Record{rec}, nil, nil
}

// cellTexts collects the cleaned text of each cell in the selection.
// goquery's Text flattens nested markup, so a cell wrapping its value
// in a link still yields the link text.
func cellTexts(cells *goquery.Selection) []string {
	var out []string
	cells.Each(func(_ int, c *goquery.Selection) {
		out = append(out, cleanCell(c.Text()))
	})
	return out
}

// htmlToMarkdown renders page HTML as markdown, scripts and styles
// stripped by the converter's base plugin.
func htmlToMarkdown(rawHTML string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle("atx"),
			),
		),
	)
	return conv.ConvertString(rawHTML)
}
