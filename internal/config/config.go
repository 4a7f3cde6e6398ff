package config

import (
	"path/filepath"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Output settings
	ProjectPath string
	ReportsDir  string
	ReportFile  string
	ResultsFile string
	Title       string

	// Capture settings
	APIPathMarker string

	// Browser settings
	BaseURL  string
	Driver   string
	Headless bool
	Timeout  time.Duration

	// Open the report with the host's default handler after writing it
	OpenReport bool

	LogLevel string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	Filter     string
	FailFast   bool
	Driver     string
	Headed     bool
	NoOpen     bool
	Verbose    bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ProjectPath:   DefaultProjectPath,
		ReportsDir:    DefaultReportsDir,
		ReportFile:    DefaultReportFile,
		ResultsFile:   DefaultResultsFile,
		Title:         DefaultTitle,
		APIPathMarker: DefaultAPIPathMarker,
		BaseURL:       DefaultBaseURL,
		Driver:        DefaultDriver,
		Headless:      true,
		Timeout:       DefaultTimeout,
		OpenReport:    true,
		LogLevel:      DefaultLogLevel,
	}
}

// ApplyFlags stores the flags and lets them override loaded settings
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Driver != "" {
		c.Driver = flags.Driver
	}
	if flags.Headed {
		c.Headless = false
	}
	if flags.NoOpen {
		c.OpenReport = false
	}
	if flags.Verbose {
		c.LogLevel = "debug"
	}
}

// GetReportPath returns the absolute path of the HTML report
func (c *Config) GetReportPath() string {
	return c.resolve(c.ReportFile)
}

// GetResultsPath returns the absolute path of the results JSON, next to the report
// so report and view always read what run wrote regardless of cwd.
func (c *Config) GetResultsPath() string {
	return c.resolve(c.ResultsFile)
}

func (c *Config) resolve(name string) string {
	dir := c.ReportsDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.ProjectPath, dir)
	}
	p := filepath.Join(dir, name)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
