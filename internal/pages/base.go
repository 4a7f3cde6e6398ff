// Package pages holds page objects for the Swag Labs demo shop.
package pages

import (
	"time"

	"github.com/sirupsen/logrus"

	"e2eperf/internal/browser"
)

// Base carries the helpers shared by every page object. Waits are timed and
// logged per element.
type Base struct {
	page browser.Page
	log  logrus.FieldLogger
	now  func() time.Time
}

func newBase(page browser.Page, log logrus.FieldLogger, name string) Base {
	return Base{
		page: page,
		log:  log.WithField("page", name),
		now:  time.Now,
	}
}

// FillData waits for the element and fills it with value
func (b Base) FillData(selector, value string) error {
	if err := b.waitFor(selector); err != nil {
		return err
	}
	b.log.WithField("selector", selector).Debug("Fill")
	return b.page.Fill(selector, value)
}

// TapButton waits for the element and clicks it
func (b Base) TapButton(selector string) error {
	if err := b.waitFor(selector); err != nil {
		return err
	}
	b.log.WithField("selector", selector).Debug("Click")
	return b.page.Click(selector)
}

// TextOf waits for the element and returns its text content
func (b Base) TextOf(selector string) (string, error) {
	if err := b.waitFor(selector); err != nil {
		return "", err
	}
	return b.page.Text(selector)
}

// IsVisible reports whether the element is currently shown
func (b Base) IsVisible(selector string) (bool, error) {
	return b.page.IsVisible(selector)
}

// URL returns the address of the current document
func (b Base) URL() (string, error) {
	return b.page.URL()
}

func (b Base) waitFor(selector string) error {
	start := b.now()
	if err := b.page.WaitVisible(selector); err != nil {
		return err
	}
	b.logElementLoadTime(selector, start)
	return nil
}

func (b Base) logElementLoadTime(selector string, start time.Time) {
	elapsed := b.now().Sub(start)
	b.log.WithFields(logrus.Fields{
		"selector": selector,
		"load_ms":  elapsed.Milliseconds(),
	}).Infof("Element %q loaded in %d ms", selector, elapsed.Milliseconds())
}
