package capture

import (
	"testing"

	"e2eperf/internal/domain"
)

func TestFilter_KeepRequest(t *testing.T) {
	filter := DefaultFilter()

	tests := []struct {
		name     string
		kind     string
		url      string
		expected bool
	}{
		{name: "xhr", kind: "xhr", url: "https://x/a.json", expected: true},
		{name: "fetch", kind: "fetch", url: "https://x/a", expected: true},
		{name: "upper case kind from cdp", kind: "XHR", url: "https://x/a", expected: true},
		{name: "image dropped", kind: "image", url: "https://x/a.png", expected: false},
		{name: "stylesheet dropped", kind: "stylesheet", url: "https://x/a.css", expected: false},
		{name: "document under api path", kind: "document", url: "https://x/api/users", expected: true},
		{name: "script not under api path", kind: "script", url: "https://x/apix.js", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.KeepRequest(tt.kind, tt.url); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFilter_KeepConsole(t *testing.T) {
	filter := DefaultFilter()

	for sev, expected := range map[domain.Severity]bool{
		domain.SeverityError:   true,
		domain.SeverityWarning: true,
		domain.SeverityInfo:    false,
		domain.SeverityLog:     false,
		domain.SeverityDebug:   false,
	} {
		if got := filter.KeepConsole(sev); got != expected {
			t.Errorf("severity %s: expected %v, got %v", sev, expected, got)
		}
	}
}

func TestFilter_EmptyMarker(t *testing.T) {
	filter := NewFilter("")
	if filter.KeepRequest("document", "https://x/api/users") {
		t.Error("empty marker should not match every URL")
	}
}
