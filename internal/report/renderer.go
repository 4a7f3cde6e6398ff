// Package report renders test run records into a self-contained HTML report.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"e2eperf/internal/domain"
)

// Renderer turns records into HTML. Output depends only on its input.
type Renderer struct {
	title string
	tmpl  *template.Template
}

type reportView struct {
	Title string
	Cards []cardView
}

type cardView struct {
	Index    int
	Name     string
	Duration string
	Rows     []rowView
	Console  []template.HTML
}

type rowView struct {
	Method      string
	MethodClass string
	Kind        string
	Status      int
	StatusClass string
	URL         string
	Size        string
	Duration    string
}

// NewRenderer creates a Renderer with the given report heading
func NewRenderer(title string) *Renderer {
	return &Renderer{
		title: title,
		tmpl:  template.Must(template.New("report").Parse(reportTemplate)),
	}
}

// Render produces the full HTML document for records, in collection order
func (r *Renderer) Render(records []domain.TestRunRecord) ([]byte, error) {
	view := reportView{
		Title: r.title,
		Cards: make([]cardView, 0, len(records)),
	}
	for i, rec := range records {
		card, err := buildCard(i+1, rec)
		if err != nil {
			return nil, err
		}
		view.Cards = append(view.Cards, card)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute report template: %w", err)
	}
	return buf.Bytes(), nil
}

func buildCard(index int, rec domain.TestRunRecord) (cardView, error) {
	card := cardView{
		Index:    index,
		Name:     rec.TestName,
		Duration: FormatDuration(rec.DurationMillis),
		Rows:     make([]rowView, 0, len(rec.Resources)),
	}

	for _, req := range rec.Resources {
		card.Rows = append(card.Rows, rowView{
			Method:      req.Method,
			MethodClass: strings.ToLower(req.Method),
			Kind:        req.ResourceKind,
			Status:      req.StatusCode,
			StatusClass: StatusClass(req.StatusCode),
			URL:         req.URL,
			Size:        FormatSize(req.SizeKiloBytes),
			Duration:    FormatDuration(req.DurationMillis),
		})
	}

	for _, line := range rec.ConsoleLogs {
		// json.Marshal would re-escape &<> in the method's output
		data, err := line.MarshalJSON()
		if err != nil {
			return cardView{}, fmt.Errorf("encode console line for %q: %w", rec.TestName, err)
		}
		// template.HTML is safe here: markup characters were escaped by escapeText
		card.Console = append(card.Console, template.HTML(escapeText(string(data))))
	}

	return card, nil
}
