package pages

import (
	"strings"

	"github.com/sirupsen/logrus"

	"e2eperf/internal/browser"
)

const (
	loginUsername = "#user-name"
	loginPassword = "#password"
	loginButton   = "#login-button"
	loginError    = `[data-test="error"]`
	loginLogo     = ".login_logo"
)

// LoginPage is the shop's landing page
type LoginPage struct {
	Base
	baseURL string
}

func NewLoginPage(page browser.Page, log logrus.FieldLogger, baseURL string) *LoginPage {
	return &LoginPage{Base: newBase(page, log, "LoginPage"), baseURL: baseURL}
}

func (p *LoginPage) Goto() error {
	return p.page.Goto(p.baseURL)
}

func (p *LoginPage) Login(user, pass string) error {
	if err := p.FillData(loginUsername, user); err != nil {
		return err
	}
	if err := p.FillData(loginPassword, pass); err != nil {
		return err
	}
	return p.TapButton(loginButton)
}

// Error returns the text of the login error banner
func (p *LoginPage) Error() (string, error) {
	text, err := p.TextOf(loginError)
	return strings.TrimSpace(text), err
}

func (p *LoginPage) Logo() (string, error) {
	text, err := p.TextOf(loginLogo)
	return strings.TrimSpace(text), err
}

// PasswordInputType returns the type attribute of the password field
func (p *LoginPage) PasswordInputType() (string, error) {
	if err := p.waitFor(loginPassword); err != nil {
		return "", err
	}
	return p.page.Attribute(loginPassword, "type")
}

func (p *LoginPage) FormVisible() (bool, error) {
	for _, selector := range []string{loginUsername, loginPassword, loginButton} {
		visible, err := p.IsVisible(selector)
		if err != nil || !visible {
			return false, err
		}
	}
	return true, nil
}
