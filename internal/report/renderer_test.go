package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e2eperf/internal/domain"
)

func kb(v float64) *float64 { return &v }

func render(t *testing.T, records ...domain.TestRunRecord) string {
	t.Helper()
	html, err := NewRenderer("Swag Labs Performance Report").Render(records)
	require.NoError(t, err)
	return string(html)
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{0, StatusWarning},
		{101, StatusWarning},
		{200, StatusSuccess},
		{204, StatusSuccess},
		{299, StatusSuccess},
		{300, StatusWarning},
		{301, StatusWarning},
		{399, StatusWarning},
		{400, StatusError},
		{404, StatusError},
		{503, StatusError},
	}

	for _, tt := range tests {
		if got := StatusClass(tt.code); got != tt.expected {
			t.Errorf("status %d: expected %s, got %s", tt.code, tt.expected, got)
		}
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "N/A", FormatSize(nil))
	assert.Equal(t, "0.0 KB", FormatSize(kb(0)))
	assert.Equal(t, "1.2 KB", FormatSize(kb(1.2)))
	assert.Equal(t, "N/A", FormatDuration(domain.UnknownMillis()))
	assert.Equal(t, "12.34 ms", FormatDuration(12.34))
	assert.Equal(t, "0.00 ms", FormatDuration(0))
}

func TestRender_RoundTrip(t *testing.T) {
	html := render(t, domain.TestRunRecord{
		TestName:       "T1",
		DurationMillis: 1234.5,
		Resources: []domain.APICallEntry{{
			Method:         "GET",
			URL:            "https://x/api/y",
			StatusCode:     200,
			DurationMillis: 12.34,
			ResourceKind:   "fetch",
			SizeKiloBytes:  kb(1.2),
		}},
		ConsoleLogs: []domain.ConsoleLine{domain.TextLine("hello")},
	})

	for _, want := range []string{
		"T1", "#1", "1234.50 ms", "GET", "200", "12.34 ms", "1.2 KB",
		`"hello"`, "https://x/api/y", `class="badge get"`, `class="status success"`,
	} {
		assert.Contains(t, html, want)
	}
	assert.Contains(t, html, `<div class="console-section">`)
}

func TestRender_EmptySuite(t *testing.T) {
	html := render(t)

	assert.Contains(t, html, "<h1>Swag Labs Performance Report</h1>")
	assert.Contains(t, html, `<div class="description">`)
	assert.NotContains(t, html, `<div class="test-card">`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(html), "</html>"))
}

func TestRender_StatusBucketsAreStable(t *testing.T) {
	rec := func(code int) domain.TestRunRecord {
		return domain.TestRunRecord{
			TestName:  "t",
			Resources: []domain.APICallEntry{{Method: "GET", StatusCode: code}},
		}
	}

	assert.Contains(t, render(t, rec(404)), `class="status error">404<`)
	assert.Contains(t, render(t, rec(301)), `class="status warning">301<`)
	assert.Contains(t, render(t, rec(200)), `class="status success">200<`)

	mixed := render(t, rec(200), rec(404), rec(301))
	assert.Contains(t, mixed, `class="status error">404<`)
	assert.Contains(t, mixed, `class="status warning">301<`)
	assert.Contains(t, mixed, `class="status success">200<`)
}

func TestRender_MissingSizeIsNotZero(t *testing.T) {
	html := render(t, domain.TestRunRecord{
		TestName: "t",
		Resources: []domain.APICallEntry{
			{Method: "GET", URL: "https://x/api/absent", StatusCode: 200},
		},
	})

	assert.Contains(t, html, "<td>N/A</td>")
	assert.NotContains(t, html, "0.0 KB")
}

func TestRender_UnknownDurations(t *testing.T) {
	html := render(t, domain.TestRunRecord{
		TestName:       "t",
		DurationMillis: domain.UnknownMillis(),
		Resources: []domain.APICallEntry{
			{Method: "GET", StatusCode: 0, DurationMillis: domain.UnknownMillis()},
		},
	})

	assert.Contains(t, html, `<span class="test-duration">N/A</span>`)
	assert.NotContains(t, html, "NaN")
}

func TestRender_NoConsolePanelWithoutLogs(t *testing.T) {
	html := render(t, domain.TestRunRecord{TestName: "quiet", DurationMillis: 1})

	assert.Contains(t, html, `<div class="test-card">`)
	assert.NotContains(t, html, `<div class="console-section">`)
}

func TestRender_CardsInCollectionOrder(t *testing.T) {
	html := render(t,
		domain.TestRunRecord{TestName: "alpha"},
		domain.TestRunRecord{TestName: "beta"},
		domain.TestRunRecord{TestName: "gamma"},
	)

	a := strings.Index(html, "alpha")
	b := strings.Index(html, "beta")
	g := strings.Index(html, "gamma")
	require.True(t, a >= 0 && b >= 0 && g >= 0)
	assert.Less(t, a, b)
	assert.Less(t, b, g)
	assert.Contains(t, html, "#3")
}

func TestRender_EscapesUserText(t *testing.T) {
	html := render(t, domain.TestRunRecord{
		TestName: "<script>alert(1)</script>",
		Resources: []domain.APICallEntry{
			{Method: "GET", URL: "https://x/api/?q=<b>", StatusCode: 200},
		},
		ConsoleLogs: []domain.ConsoleLine{
			domain.EntryLine(domain.ConsoleLogEntry{Severity: domain.SeverityError, Message: "<img src=x> & more"}),
		},
	})

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.NotContains(t, html, "<b>")
	assert.NotContains(t, html, "<img src=x>")
	assert.Contains(t, html, `{"type":"error","message":"&lt;img src=x&gt; &amp; more"}`)
}

func TestRender_IsDeterministic(t *testing.T) {
	rec := domain.TestRunRecord{
		TestName:       "same",
		DurationMillis: 10,
		Resources:      []domain.APICallEntry{{Method: "POST", URL: "https://x/api/a", StatusCode: 201, SizeKiloBytes: kb(3)}},
		ConsoleLogs:    []domain.ConsoleLine{domain.TextLine("x")},
	}
	assert.Equal(t, render(t, rec), render(t, rec))
}

func TestRender_ConsoleLineKeepsRawJSON(t *testing.T) {
	html := render(t, domain.TestRunRecord{
		TestName:    "console",
		ConsoleLogs: []domain.ConsoleLine{domain.TextLine("a<b>&c")},
	})

	assert.Contains(t, html, `"a&lt;b&gt;&amp;c"`)
	assert.NotContains(t, html, `\u003c`)
	assert.NotContains(t, html, `\u0026`)
}
