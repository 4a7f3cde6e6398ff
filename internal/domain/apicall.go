package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Millis is a duration in milliseconds. NaN marks an unknown duration.
type Millis float64

// UnknownMillis returns the NaN sentinel
func UnknownMillis() Millis {
	return Millis(math.NaN())
}

// MillisOf converts a time.Duration
func MillisOf(d time.Duration) Millis {
	return Millis(float64(d) / float64(time.Millisecond))
}

// Unknown reports whether the value is the NaN sentinel (or otherwise not finite)
func (m Millis) Unknown() bool {
	f := float64(m)
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// MarshalJSON writes unknown durations as null, since JSON has no NaN.
func (m Millis) MarshalJSON() ([]byte, error) {
	if m.Unknown() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(m))
}

// UnmarshalJSON reads null back as the NaN sentinel
func (m *Millis) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = UnknownMillis()
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Millis(f)
	return nil
}

// APICallEntry is one observed network request/response pair.
// StatusCode 0 means the response could not be resolved.
type APICallEntry struct {
	Method         string   `json:"method"`
	URL            string   `json:"url"`
	StatusCode     int      `json:"status"`
	DurationMillis Millis   `json:"duration"`
	ResourceKind   string   `json:"type"`
	SizeKiloBytes  *float64 `json:"sizeKB,omitempty"`
}

// KiloBytes returns a pointer suitable for SizeKiloBytes
func KiloBytes(byteCount int) *float64 {
	kb := float64(byteCount) / 1024
	return &kb
}
