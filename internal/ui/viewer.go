package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"e2eperf/internal/domain"
	"e2eperf/internal/report"
)

// Viewer displays recorded test runs interactively
type Viewer interface {
	View(results *domain.ResultsOutput) error
}

// RecordsViewer is a two-pane TUI: test runs on the left, their API calls and
// console output on the right.
type RecordsViewer struct{}

// NewRecordsViewer creates a new RecordsViewer
func NewRecordsViewer() *RecordsViewer {
	return &RecordsViewer{}
}

// View blocks until the user quits
func (rv *RecordsViewer) View(results *domain.ResultsOutput) error {
	if len(results.Records) == 0 {
		color.Yellow("No test runs recorded")
		return nil
	}

	app := tview.NewApplication()
	records := results.Records

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, rec := range records {
		list.AddItem(listItemText(i, rec), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 2, 0, false).
		AddItem(detailsView, 0, 1, false)

	panes := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(headerText(results.Meta, len(records)))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(records) {
			return
		}
		statsView.SetText(formatRecordStats(index, records[index]))
		detailsView.SetText(formatRecordDetails(records[index]))
		detailsView.ScrollToBeginning()
	}

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		}
		return event
	})

	updateDetails()

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(panes, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func headerText(meta domain.ResultsMeta, count int) string {
	return fmt.Sprintf(
		" Test Runs (%d, %d failed scenarios, %d failed API calls) | ↑↓ navigate, → details, ← back, q quit ",
		count, meta.FailedTests, meta.FailedRequests,
	)
}

func listItemText(index int, rec domain.TestRunRecord) string {
	marker := "[green]●"
	for _, call := range rec.Resources {
		if report.StatusClass(call.StatusCode) == report.StatusError {
			marker = "[red]●"
			break
		}
	}
	return fmt.Sprintf("%s [yellow]#%d[white] %s", marker, index+1, tview.Escape(rec.TestName))
}

func formatRecordStats(index int, rec domain.TestRunRecord) string {
	return fmt.Sprintf(
		"[cyan]#%d[white] %s  [cyan]duration:[white] %s  [cyan]api calls:[white] %d  [cyan]console:[white] %d",
		index+1, tview.Escape(rec.TestName), report.FormatDuration(rec.DurationMillis),
		len(rec.Resources), len(rec.ConsoleLogs),
	)
}

func formatRecordDetails(rec domain.TestRunRecord) string {
	var b strings.Builder

	b.WriteString("[yellow]API Calls:[white]\n")
	if len(rec.Resources) == 0 {
		b.WriteString("  [gray](none)[white]\n")
	}
	for _, call := range rec.Resources {
		fmt.Fprintf(&b, "  [%s]%3d[white] %-6s %s  [gray]%s · %s · %s[white]\n",
			statusColor(call.StatusCode),
			call.StatusCode,
			tview.Escape(call.Method),
			tview.Escape(call.URL),
			report.FormatDuration(call.DurationMillis),
			report.FormatSize(call.SizeKiloBytes),
			tview.Escape(call.ResourceKind),
		)
	}

	if len(rec.ConsoleLogs) > 0 {
		b.WriteString("\n[yellow]Console:[white]\n")
		for _, line := range rec.ConsoleLogs {
			if line.Entry == nil {
				fmt.Fprintf(&b, "  %s\n", tview.Escape(line.Text))
				continue
			}
			sevColor := "white"
			switch line.Entry.Severity {
			case domain.SeverityError:
				sevColor = "red"
			case domain.SeverityWarning:
				sevColor = "yellow"
			}
			fmt.Fprintf(&b, "  [%s]%s[white] %s\n", sevColor, tview.Escape(string(line.Entry.Severity)), tview.Escape(line.Entry.Message))
		}
	}

	return b.String()
}

func statusColor(code int) string {
	switch report.StatusClass(code) {
	case report.StatusSuccess:
		return "green"
	case report.StatusError:
		return "red"
	default:
		return "yellow"
	}
}
