package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats schedule views as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

func (f *JSONFormatter) FormatStatus(w io.Writer, s *Status) error {
	return f.encode(w, s)
}

func (f *JSONFormatter) FormatTimeline(w io.Writer, t *Timeline) error {
	return f.encode(w, t)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
