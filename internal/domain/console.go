package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Severity is the browser's console message type (error, warning, info, log, ...)
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityLog     Severity = "log"
	SeverityDebug   Severity = "debug"
)

// ParseSeverity normalizes a driver-provided console type.
// Chrome DevTools reports "warn" in some paths where Playwright reports "warning".
func ParseSeverity(s string) Severity {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warn" {
		return SeverityWarning
	}
	return Severity(s)
}

// ConsoleLogEntry is a single console message captured during a test
type ConsoleLogEntry struct {
	Severity Severity `json:"type"`
	Message  string   `json:"message"`
}

// ConsoleLine is one line of a record's console panel: either a structured entry
// or free text supplied by the harness.
type ConsoleLine struct {
	Entry *ConsoleLogEntry
	Text  string
}

// EntryLine wraps a structured console entry
func EntryLine(e ConsoleLogEntry) ConsoleLine {
	return ConsoleLine{Entry: &e}
}

// TextLine wraps free text
func TextLine(s string) ConsoleLine {
	return ConsoleLine{Text: s}
}

// LinesFromEntries converts captured entries into console lines, keeping order.
func LinesFromEntries(entries []ConsoleLogEntry) []ConsoleLine {
	lines := make([]ConsoleLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, EntryLine(e))
	}
	return lines
}

// MarshalJSON encodes structured lines as objects and text lines as strings.
// HTML characters are left unescaped so the output matches what a browser's
// JSON.stringify would produce.
func (l ConsoleLine) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	var err error
	if l.Entry != nil {
		err = enc.Encode(l.Entry)
	} else {
		err = enc.Encode(l.Text)
	}
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON accepts either an object or a string
func (l *ConsoleLine) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var e ConsoleLogEntry
		if err := json.Unmarshal(trimmed, &e); err != nil {
			return err
		}
		*l = ConsoleLine{Entry: &e}
		return nil
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return err
	}
	*l = ConsoleLine{Text: s}
	return nil
}
