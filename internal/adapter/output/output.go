// Package output provides output formatters for schedule status and timelines.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Formatter formats schedule views for output.
type Formatter interface {
	// FormatStatus writes the state of the schedule at one instant.
	FormatStatus(w io.Writer, s *Status) error

	// FormatTimeline writes the day's slots.
	FormatTimeline(w io.Writer, t *Timeline) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (FormatType, error) {
	switch f := FormatType(strings.ToLower(s)); f {
	case FormatPlain, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown output format %q (plain, json, yaml)", s)
	}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Reference time.Time // Relative times are computed against this; zero = time.Now
	ShowPaths bool      // Show resolved paths instead of wallpaper names (plain only)
}

func (o FormatterOptions) reference() time.Time {
	if o.Reference.IsZero() {
		return time.Now()
	}
	return o.Reference
}
