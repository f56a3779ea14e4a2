package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// OutputPort emits normalized Items to an external sink. Emission is
// attempted for the whole batch and no partial-emission contract is
// promised: a failure partway propagates to the caller, who owns the
// retry-or-skip decision. Implementations must not mutate the Items.
type OutputPort interface {
	Emit(items []Item) error
}

// JSONOutput writes items to a writer as a JSON array of
// {"title", "content", "url"} objects.
type JSONOutput struct {
	w io.Writer
}

// NewJSONOutput creates a JSONOutput writing to w.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{w: w}
}

type jsonItem struct {
	Title   string         `json:"title"`
	Content map[string]any `json:"content"`
	URL     string         `json:"url"`
}

func (o *JSONOutput) Emit(items []Item) error {
	out := make([]jsonItem, 0, len(items))
	for _, it := range items {
		out = append(out, jsonItem{Title: it.Title, Content: it.Content, URL: it.URL})
	}

	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	return nil
}

// LogOutput emits items through a zerolog logger, one event per item.
// Useful as a development sink and for dry runs.
type LogOutput struct {
	log zerolog.Logger
}

// NewLogOutput creates a LogOutput emitting through log.
func NewLogOutput(log zerolog.Logger) *LogOutput {
	return &LogOutput{log: log}
}

func (o *LogOutput) Emit(items []Item) error {
	for i, it := range items {
		o.log.Info().
			Int("n", i+1).
			Str("title", it.Title).
			Str("url", it.URL).
			Interface("content", it.Content).
			Msg("item")
	}
	return nil
}
