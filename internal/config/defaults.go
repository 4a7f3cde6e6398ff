package config

import "time"

const (
	// DefaultProjectPath is the directory relative paths are resolved against
	DefaultProjectPath = "."
	// DefaultReportsDir is the directory the HTML report and results JSON are written to
	DefaultReportsDir = "reports"
	// DefaultReportFile is the HTML report file name
	DefaultReportFile = "performance-report.html"
	// DefaultResultsFile is the results JSON file name
	DefaultResultsFile = "performance-results.json"
	// DefaultConfigFile is the optional YAML config file name
	DefaultConfigFile = "e2eperf.yaml"
	// DefaultAPIPathMarker marks API URLs regardless of resource kind
	DefaultAPIPathMarker = "/api/"
	// DefaultBaseURL is the shop under test
	DefaultBaseURL = "https://www.saucedemo.com/"
	// DefaultDriver is the browser automation driver
	DefaultDriver = DriverPlaywright
	// DefaultTimeout bounds a single scenario
	DefaultTimeout = 30 * time.Second
	// DefaultLogLevel is the logrus level name
	DefaultLogLevel = "info"
	// DefaultTitle is the report heading
	DefaultTitle = "Swag Labs Performance Report"
)

const (
	DriverPlaywright = "playwright"
	DriverChromedp   = "chromedp"
)

// SupportedDrivers lists the accepted driver names
var SupportedDrivers = []string{DriverPlaywright, DriverChromedp}
