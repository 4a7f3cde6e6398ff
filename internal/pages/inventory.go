package pages

import (
	"strings"

	"github.com/sirupsen/logrus"

	"e2eperf/internal/browser"
)

const (
	inventoryList    = ".inventory_list"
	inventoryTitle   = ".title"
	addBackpack      = `[data-test="add-to-cart-sauce-labs-backpack"]`
	shoppingCartLink = ".shopping_cart_link"
)

// InventoryPage lists the products after login
type InventoryPage struct {
	Base
}

func NewInventoryPage(page browser.Page, log logrus.FieldLogger) *InventoryPage {
	return &InventoryPage{Base: newBase(page, log, "InventoryPage")}
}

func (p *InventoryPage) Visible() (bool, error) {
	if err := p.waitFor(inventoryList); err != nil {
		return false, err
	}
	return p.IsVisible(inventoryList)
}

func (p *InventoryPage) Title() (string, error) {
	text, err := p.TextOf(inventoryTitle)
	return strings.TrimSpace(text), err
}

func (p *InventoryPage) AddItemToCart() error {
	return p.TapButton(addBackpack)
}

func (p *InventoryPage) OpenCart() error {
	return p.TapButton(shoppingCartLink)
}
