package pages

import (
	"github.com/sirupsen/logrus"

	"e2eperf/internal/browser"
)

const (
	menuButton = "#react-burger-menu-btn"
	logoutLink = "#logout_sidebar_link"
)

type MenuPage struct {
	Base
}

func NewMenuPage(page browser.Page, log logrus.FieldLogger) *MenuPage {
	return &MenuPage{Base: newBase(page, log, "MenuPage")}
}

func (p *MenuPage) Logout() error {
	if err := p.TapButton(menuButton); err != nil {
		return err
	}
	return p.TapButton(logoutLink)
}

func (p *MenuPage) LoginPageVisible() (bool, error) {
	if err := p.waitFor(loginButton); err != nil {
		return false, err
	}
	return p.IsVisible(loginButton)
}
