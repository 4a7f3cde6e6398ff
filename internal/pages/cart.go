package pages

import (
	"github.com/sirupsen/logrus"

	"e2eperf/internal/browser"
)

const (
	cartItem       = ".cart_item"
	checkoutButton = `[data-test="checkout"]`
)

type CartPage struct {
	Base
}

func NewCartPage(page browser.Page, log logrus.FieldLogger) *CartPage {
	return &CartPage{Base: newBase(page, log, "CartPage")}
}

func (p *CartPage) HasItem() (bool, error) {
	if err := p.waitFor(cartItem); err != nil {
		return false, err
	}
	return p.IsVisible(cartItem)
}

func (p *CartPage) ProceedToCheckout() error {
	return p.TapButton(checkoutButton)
}
