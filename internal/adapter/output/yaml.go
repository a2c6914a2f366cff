package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats schedule views as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

func (f *YAMLFormatter) FormatStatus(w io.Writer, s *Status) error {
	return f.encode(w, s)
}

func (f *YAMLFormatter) FormatTimeline(w io.Writer, t *Timeline) error {
	return f.encode(w, t)
}

func (f *YAMLFormatter) encode(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
