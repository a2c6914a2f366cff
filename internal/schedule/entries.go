package schedule

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrEmptySchedule is returned when a schedule has no entries.
var ErrEmptySchedule = errors.New("schedule has no entries")

// Entry is one "TIME = WALLPAPER" line of the schedule file.
type Entry struct {
	Time      Clock  `json:"time" yaml:"time"`
	Wallpaper string `json:"wallpaper" yaml:"wallpaper"`
}

// ParseError describes a malformed schedule line.
type ParseError struct {
	Line int    // 1-based line number, 0 when parsing a single line
	Text string // The offending line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("%q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseLine parses a single "TIME = WALLPAPER" line.
func ParseLine(line string) (Entry, error) {
	timePart, wallpaper, found := strings.Cut(line, "=")
	if !found {
		return Entry{}, &ParseError{Text: line, Err: errors.New("missing '=' separator")}
	}

	t, err := ParseClock(timePart)
	if err != nil {
		return Entry{}, &ParseError{Text: line, Err: err}
	}

	wallpaper = strings.TrimSpace(wallpaper)
	if wallpaper == "" {
		return Entry{}, &ParseError{Text: line, Err: errors.New("empty wallpaper")}
	}

	return Entry{Time: t, Wallpaper: wallpaper}, nil
}

// Parse reads schedule entries from r, one per non-blank line.
// Any malformed line fails the whole parse. The result is sorted by time,
// keeping declaration order for entries with equal times.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := ParseLine(line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = lineNo
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}

	SortEntries(entries)
	return entries, nil
}

// LoadFile parses the schedule file at path.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule %s: %w", path, err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", path, err)
	}
	return entries, nil
}

// SortEntries sorts entries ascending by time in place. The sort is stable.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time < entries[j].Time
	})
}

// ConfigSchedule is a schedule driven by entries from the config file.
type ConfigSchedule struct {
	entries []Entry
}

var _ Schedule = (*ConfigSchedule)(nil)

// NewConfigSchedule copies and sorts entries. An empty list is rejected
// with ErrEmptySchedule since no wallpaper could ever be active.
func NewConfigSchedule(entries []Entry) (*ConfigSchedule, error) {
	if len(entries) == 0 {
		return nil, ErrEmptySchedule
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	SortEntries(sorted)

	return &ConfigSchedule{entries: sorted}, nil
}

// LoadConfigSchedule loads the schedule file at path and builds a ConfigSchedule.
func LoadConfigSchedule(path string) (*ConfigSchedule, error) {
	entries, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := NewConfigSchedule(entries)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", path, err)
	}
	return s, nil
}

// activeIndex returns the index of the earliest entry whose time is after now,
// or 0 when now is at or past every entry (the next cycle's first entry).
func (s *ConfigSchedule) activeIndex(now Clock) int {
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Time > now
	})
	if i == len(s.entries) {
		return 0
	}
	return i
}

// Active returns the wallpaper of the earliest entry after now, wrapping to the first entry.
func (s *ConfigSchedule) Active(now Clock) string {
	return s.entries[s.activeIndex(now)].Wallpaper
}

// Previous returns the wallpaper of the entry preceding the active one in the cycle.
func (s *ConfigSchedule) Previous(now Clock) string {
	i := s.activeIndex(now)
	return s.entries[(i-1+len(s.entries))%len(s.entries)].Wallpaper
}

// Changes returns the distinct entry times in ascending order.
func (s *ConfigSchedule) Changes() []Clock {
	changes := make([]Clock, 0, len(s.entries))
	for _, e := range s.entries {
		if len(changes) == 0 || changes[len(changes)-1] != e.Time {
			changes = append(changes, e.Time)
		}
	}
	return changes
}

// Entries returns a copy of the sorted entries.
func (s *ConfigSchedule) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
