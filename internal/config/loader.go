package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	errUnsupportedDriver = errors.New("unsupported driver")
	errReportsDirEmpty   = errors.New("reports dir is required")
	errReportFileEmpty   = errors.New("report file name is required")
	errBadTimeout        = errors.New("timeout must be positive")
)

// fileConfig mirrors Config for YAML decoding; nil fields keep the default
type fileConfig struct {
	ReportsDir    string `yaml:"reports_dir"`
	ReportFile    string `yaml:"report_file"`
	ResultsFile   string `yaml:"results_file"`
	Title         string `yaml:"title"`
	APIPathMarker string `yaml:"api_path_marker"`
	BaseURL       string `yaml:"base_url"`
	Driver        string `yaml:"driver"`
	Headless      *bool  `yaml:"headless"`
	Timeout       string `yaml:"timeout"`
	OpenReport    *bool  `yaml:"open_report"`
	LogLevel      string `yaml:"log_level"`
}

// Load builds a Config from defaults, the optional YAML file, the project's
// .env file and the process environment, in that order of precedence (last wins).
// An empty path means DefaultConfigFile, which may be absent.
func Load(projectPath, path string) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.ProjectPath, DefaultConfigFile)
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&c.ReportsDir, fc.ReportsDir)
	setString(&c.ReportFile, fc.ReportFile)
	setString(&c.ResultsFile, fc.ResultsFile)
	setString(&c.Title, fc.Title)
	setString(&c.APIPathMarker, fc.APIPathMarker)
	setString(&c.BaseURL, fc.BaseURL)
	setString(&c.Driver, fc.Driver)
	setString(&c.LogLevel, fc.LogLevel)
	if fc.Headless != nil {
		c.Headless = *fc.Headless
	}
	if fc.OpenReport != nil {
		c.OpenReport = *fc.OpenReport
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("parse timeout %q: %w", fc.Timeout, err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.BaseURL, os.Getenv("E2E_BASE_URL"))
	setString(&c.Driver, os.Getenv("E2E_DRIVER"))
	setString(&c.ReportsDir, os.Getenv("E2E_REPORTS_DIR"))
	setString(&c.LogLevel, os.Getenv("LOG_LEVEL"))

	if v := os.Getenv("E2E_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse E2E_HEADLESS: %w", err)
		}
		c.Headless = headless
	}
	return nil
}

// Validate checks the settings every command relies on
func (c *Config) Validate() error {
	if !slices.Contains(SupportedDrivers, c.Driver) {
		return fmt.Errorf("%w: %q (want one of %v)", errUnsupportedDriver, c.Driver, SupportedDrivers)
	}
	if c.ReportsDir == "" {
		return errReportsDirEmpty
	}
	if c.ReportFile == "" {
		return errReportFileEmpty
	}
	if c.Timeout <= 0 {
		return errBadTimeout
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
