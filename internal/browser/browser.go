// Package browser adapts browser automation drivers to the page and event
// interfaces used by page objects and the capture package.
package browser

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"e2eperf/internal/capture"
	"e2eperf/internal/config"
)

// Page is the driver-neutral surface page objects are written against.
// Selectors are CSS selectors.
type Page interface {
	Goto(url string) error
	Fill(selector, value string) error
	Click(selector string) error
	WaitVisible(selector string) error
	Text(selector string) (string, error)
	IsVisible(selector string) (bool, error)
	Attribute(selector, name string) (string, error)
	URL() (string, error)
}

// Session is one browser tab under automated control
type Session interface {
	capture.Source
	Page() Page
	Close() error
}

// Browser starts sessions
type Browser interface {
	NewSession() (Session, error)
	Close() error
}

// Launch starts the configured driver
func Launch(cfg *config.Config, log logrus.FieldLogger) (Browser, error) {
	log = log.WithFields(logrus.Fields{
		"component": "browser",
		"driver":    cfg.Driver,
	})
	switch cfg.Driver {
	case config.DriverPlaywright:
		return launchPlaywright(cfg, log)
	case config.DriverChromedp:
		return launchChromedp(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}
