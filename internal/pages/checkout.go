package pages

import (
	"strings"

	"github.com/sirupsen/logrus"

	"e2eperf/internal/browser"
)

const (
	checkoutFirstName = `[data-test="firstName"]`
	checkoutLastName  = `[data-test="lastName"]`
	checkoutPostal    = `[data-test="postalCode"]`
	checkoutContinue  = `[data-test="continue"]`
	checkoutFinish    = `[data-test="finish"]`
	completeHeader    = ".complete-header"
)

type CheckoutPage struct {
	Base
}

func NewCheckoutPage(page browser.Page, log logrus.FieldLogger) *CheckoutPage {
	return &CheckoutPage{Base: newBase(page, log, "CheckoutPage")}
}

// FillCheckoutInfo enters the buyer details and continues to the overview
func (p *CheckoutPage) FillCheckoutInfo(firstName, lastName, postalCode string) error {
	fields := []struct{ selector, value string }{
		{checkoutFirstName, firstName},
		{checkoutLastName, lastName},
		{checkoutPostal, postalCode},
	}
	for _, f := range fields {
		if err := p.FillData(f.selector, f.value); err != nil {
			return err
		}
	}
	return p.TapButton(checkoutContinue)
}

func (p *CheckoutPage) Finish() error {
	return p.TapButton(checkoutFinish)
}

// Confirmation returns the order complete header
func (p *CheckoutPage) Confirmation() (string, error) {
	text, err := p.TextOf(completeHeader)
	return strings.TrimSpace(text), err
}
