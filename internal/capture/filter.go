package capture

import (
	"strings"

	"e2eperf/internal/domain"
)

// DefaultAPIPathMarker marks a URL as an API call regardless of resource kind
const DefaultAPIPathMarker = "/api/"

// Filter decides which events are worth keeping
type Filter struct {
	severities    map[domain.Severity]bool
	resourceKinds map[string]bool
	apiPathMarker string
}

// NewFilter keeps error/warning console messages and xhr/fetch requests,
// plus any request whose URL contains apiPathMarker.
func NewFilter(apiPathMarker string) Filter {
	return Filter{
		severities: map[domain.Severity]bool{
			domain.SeverityError:   true,
			domain.SeverityWarning: true,
		},
		resourceKinds: map[string]bool{
			"xhr":   true,
			"fetch": true,
		},
		apiPathMarker: apiPathMarker,
	}
}

// DefaultFilter uses DefaultAPIPathMarker
func DefaultFilter() Filter {
	return NewFilter(DefaultAPIPathMarker)
}

// KeepConsole reports whether a console message of this severity is recorded
func (f Filter) KeepConsole(sev domain.Severity) bool {
	return f.severities[sev]
}

// KeepRequest reports whether a request is recorded. Images, stylesheets,
// fonts and documents are dropped unless their URL looks like an API call.
func (f Filter) KeepRequest(resourceKind, url string) bool {
	if f.resourceKinds[strings.ToLower(resourceKind)] {
		return true
	}
	return f.apiPathMarker != "" && strings.Contains(url, f.apiPathMarker)
}
