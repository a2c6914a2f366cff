package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// PlainFormatter formats schedule views as aligned plain text.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// FormatStatus writes one "label value" line per field.
func (f *PlainFormatter) FormatStatus(w io.Writer, s *Status) error {
	active := s.Active
	if f.opts.ShowPaths {
		active = s.ActivePath
	}

	next := fmt.Sprintf("%s at %s (%s)", s.NextWallpaper, s.NextChange,
		humanize.RelTime(s.NextChangeAt, f.opts.reference(), "ago", "from now"))

	rows := [][2]string{
		{"now", s.Now.String()},
		{"active", activeStyle.Render(active)},
		{"previous", s.Previous},
		{"next", next},
		{"source", s.Source},
	}
	if s.ScheduleFile != "" {
		rows = append(rows, [2]string{"file", s.ScheduleFile})
	}
	rows = append(rows, [2]string{"directory", s.WallpaperDir})

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", row[0])))
		sb.WriteString(row[1])
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTimeline writes one line per slot, marking the active one.
func (f *PlainFormatter) FormatTimeline(w io.Writer, t *Timeline) error {
	var sb strings.Builder

	for i, slot := range t.Slots {
		name := slot.Wallpaper
		if f.opts.ShowPaths && i < len(t.Paths) {
			name = t.Paths[i]
		}

		line := fmt.Sprintf("  %s  %s", slot.Start, name)
		if i == t.Active {
			line = activeStyle.Render(fmt.Sprintf("* %s  %s", slot.Start, name))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
