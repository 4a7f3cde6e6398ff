package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"e2eperf/internal/domain"
	"e2eperf/internal/report"
	"e2eperf/internal/scenario"
)

// Formatter formats and displays terminal output
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter() *Formatter {
	return &Formatter{out: os.Stdout}
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

// PrintMetaStats prints the run statistics and the per-scenario outcome
func (f *Formatter) PrintMetaStats(meta domain.ResultsMeta, results []domain.TestResult) {
	fmt.Fprintln(f.out)
	color.New(color.FgCyan, color.Bold).Fprintln(f.out, "Performance Run Statistics")

	stats := f.newTable([]string{"Metric", "Value"})
	stats.Append([]string{"Total Scenarios", strconv.Itoa(meta.TotalTests)})
	stats.Append([]string{"Passed Scenarios", color.GreenString("%d", meta.PassedTests)})
	stats.Append([]string{"Failed Scenarios", color.RedString("%d", meta.FailedTests)})
	stats.Append([]string{"API Calls", strconv.Itoa(meta.TotalRequests)})
	stats.Append([]string{"Failed API Calls", strconv.Itoa(meta.FailedRequests)})
	stats.Append([]string{"Console Errors/Warnings", strconv.Itoa(meta.ConsoleMessages)})
	stats.Append([]string{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds)})
	stats.Append([]string{"Driver", meta.Driver})
	stats.Append([]string{"Timestamp", meta.Timestamp})
	stats.Render()

	if len(results) > 0 {
		fmt.Fprintln(f.out)
		outcomes := f.newTable([]string{"#", "Scenario", "Status", "Duration", "Error"})
		for i, r := range results {
			status := color.GreenString("PASS")
			errText := ""
			if !r.Passed {
				status = color.RedString("FAIL")
				if r.Error != nil {
					errText = r.Error.Error()
				}
			}
			outcomes.Append([]string{
				strconv.Itoa(i + 1),
				r.Name,
				status,
				fmt.Sprintf("%.2fs", r.Duration.Seconds()),
				errText,
			})
		}
		outcomes.Render()
	}

	fmt.Fprintln(f.out)
	if meta.FailedTests == 0 {
		color.New(color.FgGreen).Fprintln(f.out, "✓ All scenarios passed!")
	} else {
		color.New(color.FgRed).Fprintf(f.out, "✗ %d scenario(s) failed\n", meta.FailedTests)
	}
}

// PrintRecords prints one row per recorded test run
func (f *Formatter) PrintRecords(records []domain.TestRunRecord) {
	if len(records) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No test runs recorded")
		return
	}

	table := f.newTable([]string{"#", "Test", "Duration", "API Calls", "Errors", "Console"})
	for i, rec := range records {
		failed := 0
		for _, call := range rec.Resources {
			if report.StatusClass(call.StatusCode) == report.StatusError {
				failed++
			}
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			rec.TestName,
			report.FormatDuration(rec.DurationMillis),
			strconv.Itoa(len(rec.Resources)),
			strconv.Itoa(failed),
			strconv.Itoa(len(rec.ConsoleLogs)),
		})
	}
	table.Render()
}

// PrintScenarioList prints the registered scenarios
func (f *Formatter) PrintScenarioList(scenarios []scenario.Scenario) {
	if len(scenarios) == 0 {
		color.New(color.FgYellow).Fprintln(f.out, "No scenarios match")
		return
	}

	color.New(color.FgGreen).Fprintf(f.out, "Found %d scenario(s):\n", len(scenarios))
	for i, sc := range scenarios {
		branch := "├──"
		if i == len(scenarios)-1 {
			branch = "└──"
		}
		feature := ""
		if sc.Feature != "" {
			feature = " " + color.YellowString("[%s]", sc.Feature)
		}
		fmt.Fprintf(f.out, "%s %s%s\n", color.CyanString(branch), sc.Name, feature)
	}
}

func (f *Formatter) newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(f.out)
	table.SetHeader(header)
	table.SetBorder(true)
	table.SetRowLine(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}
