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

package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ingestkit/ingest"
)

var version = "dev"

func main() {
	var (
		output      string
		configPath  string
		normalizer  string
		timeout     time.Duration
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&output, "o", "", "Output file (default: stdout)")
	flag.StringVar(&output, "output", "", "Output file (default: stdout)")
	flag.StringVar(&configPath, "config", "", "Site config file (YAML)")
	flag.StringVar(&normalizer, "normalizer", "", "Normalizer: generic or bcra (default: from config, else generic)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP fetch timeout")
	flag.BoolVar(&verbose, "v", false, "Verbose (debug) logging")
	flag.BoolVar(&showVersion, "version", false, "Show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ingest [flags] <source>\n\n")
		fmt.Fprintf(os.Stderr, "Fetch one document and ingest it into normalized JSON items.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  source    URL to fetch, or a local file path\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("ingest %s\n", version)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	source := flag.Arg(0)

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	var cfg *Config
	if configPath != "" {
		var err error
		cfg, err = loadConfig(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	site := cfg.siteFor(source)
	if site != nil {
		log.Debug().Str("site", site.Name).Str("url", source).Msg("matched site config")
		if normalizer == "" {
			normalizer = site.Normalizer
		}
		if output == "" {
			output = site.Output
		}
	}

	norm, err := normalizerByName(normalizer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sink, closeSink, err := openOutput(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeSink()

	resp, err := fetch(source, timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pipeline := ingest.New(
		ingest.WithNormalizer(norm),
		ingest.WithOutput(ingest.NewJSONOutput(sink)),
		ingest.WithLogger(log),
	)

	summary, err := pipeline.Process(resp)
	if err != nil {
		if ingest.IsUnsupportedFormat(err) {
			fmt.Fprintf(os.Stderr, "Skipped: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Int("items", summary.Items).
		Int("record_errors", len(summary.RecordErrors)).
		Int("normalization_errors", len(summary.NormalizationErrors)).
		Msg("done")
}

func normalizerByName(name string) (ingest.Normalizer, error) {
	switch name {
	case "", "generic":
		return ingest.NewGenericNormalizer(), nil
	case "bcra":
		return ingest.NewBcraNormalizer(), nil
	default:
		return nil, fmt.Errorf("unknown normalizer %q (want generic or bcra)", name)
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// fetch retrieves the source over HTTP, or reads it from disk. The
// pipeline core does no I/O; this one-shot fetch stands in for the
// crawling engine that would normally drive it.
func fetch(source string, timeout time.Duration) (ingest.Response, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: timeout}
		resp, err := client.Get(source)
		if err != nil {
			return ingest.Response{}, fmt.Errorf("fetch %s: %w", source, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return ingest.Response{}, fmt.Errorf("fetch %s: status %s", source, resp.Status)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return ingest.Response{}, fmt.Errorf("read %s: %w", source, err)
		}
		return ingest.Response{
			URL:    source,
			Status: resp.StatusCode,
			Body:   body,
			Header: resp.Header,
		}, nil
	}

	body, err := os.ReadFile(source)
	if err != nil {
		return ingest.Response{}, fmt.Errorf("read %s: %w", source, err)
	}
	// No transport headers for files: content type resolution falls
	// back to the extension.
	return ingest.Response{
		URL:    source,
		Status: http.StatusOK,
		Body:   body,
		Header: http.Header{},
	}, nil
}
