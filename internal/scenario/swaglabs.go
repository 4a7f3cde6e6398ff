package scenario

import (
	"context"
	"fmt"
	"strings"

	"e2eperf/internal/pages"
)

const (
	standardUser   = "standard_user"
	lockedOutUser  = "locked_out_user"
	validPassword  = "secret_sauce"
	mismatchError  = "Epic sadface: Username and password do not match any user in this service"
	requiredError  = "Epic sadface: Username is required"
	lockedOutError = "Epic sadface: Sorry, this user has been locked out."
)

// SwagLabs returns the shop scenarios in execution order
func SwagLabs() []Scenario {
	return []Scenario{
		{Name: "TC001: Verify login page loads successfully", Feature: "Login", Run: loginPageLoads},
		{Name: "TC002: Login with valid credentials", Feature: "Login", Run: validLogin},
		{Name: "TC003: Login with invalid username", Feature: "Login", Run: invalidLogin("invalid_username", validPassword, mismatchError)},
		{Name: "TC004: Login with blank fields", Feature: "Login", Run: invalidLogin("", "", requiredError)},
		{Name: "TC005: Login with invalid password", Feature: "Login", Run: invalidLogin(standardUser, "invalid_password", mismatchError)},
		{Name: "TC006: Verify password field masking", Feature: "Login", Run: passwordMasked},
		{Name: "TC010: Verify successful logout process", Feature: "Logout", Run: logout},
		{Name: "TC011: Locked out user shows proper error message", Feature: "Login", Run: invalidLogin(lockedOutUser, validPassword, lockedOutError)},
		{Name: "Complete Swag Labs purchase flow", Feature: "Checkout", Run: purchaseFlow},
	}
}

func loginPageLoads(ctx context.Context, env Env) error {
	login := pages.NewLoginPage(env.Page, env.Log, env.BaseURL)
	if err := login.Goto(); err != nil {
		return err
	}

	visible, err := login.FormVisible()
	if err != nil {
		return err
	}
	if !visible {
		return fmt.Errorf("login form is not visible")
	}

	logo, err := login.Logo()
	if err != nil {
		return err
	}
	return expectEqual("login logo", "Swag Labs", logo)
}

func validLogin(ctx context.Context, env Env) error {
	if err := loginAs(env, standardUser, validPassword); err != nil {
		return err
	}
	return expectInventory(env)
}

func invalidLogin(user, pass, want string) func(context.Context, Env) error {
	return func(ctx context.Context, env Env) error {
		login := pages.NewLoginPage(env.Page, env.Log, env.BaseURL)
		if err := login.Goto(); err != nil {
			return err
		}
		if err := login.Login(user, pass); err != nil {
			return err
		}

		got, err := login.Error()
		if err != nil {
			return err
		}
		return expectContains("login error", want, got)
	}
}

func passwordMasked(ctx context.Context, env Env) error {
	login := pages.NewLoginPage(env.Page, env.Log, env.BaseURL)
	if err := login.Goto(); err != nil {
		return err
	}

	kind, err := login.PasswordInputType()
	if err != nil {
		return err
	}
	return expectEqual("password input type", "password", kind)
}

func logout(ctx context.Context, env Env) error {
	if err := loginAs(env, standardUser, validPassword); err != nil {
		return err
	}
	if err := expectInventory(env); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	menu := pages.NewMenuPage(env.Page, env.Log)
	if err := menu.Logout(); err != nil {
		return err
	}
	return expectLoginPage(menu)
}

func purchaseFlow(ctx context.Context, env Env) error {
	if err := loginAs(env, standardUser, validPassword); err != nil {
		return err
	}

	inventory := pages.NewInventoryPage(env.Page, env.Log)
	visible, err := inventory.Visible()
	if err != nil {
		return err
	}
	if !visible {
		return fmt.Errorf("inventory list is not visible")
	}

	if err := inventory.AddItemToCart(); err != nil {
		return err
	}
	if err := inventory.OpenCart(); err != nil {
		return err
	}

	cart := pages.NewCartPage(env.Page, env.Log)
	hasItem, err := cart.HasItem()
	if err != nil {
		return err
	}
	if !hasItem {
		return fmt.Errorf("cart is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := cart.ProceedToCheckout(); err != nil {
		return err
	}
	checkout := pages.NewCheckoutPage(env.Page, env.Log)
	if err := checkout.FillCheckoutInfo("John", "Doe", "1000"); err != nil {
		return err
	}
	if err := checkout.Finish(); err != nil {
		return err
	}

	confirmation, err := checkout.Confirmation()
	if err != nil {
		return err
	}
	if err := expectContains("order confirmation", "Thank you for your order!", confirmation); err != nil {
		return err
	}

	menu := pages.NewMenuPage(env.Page, env.Log)
	if err := menu.Logout(); err != nil {
		return err
	}
	if err := expectLoginPage(menu); err != nil {
		return err
	}
	env.Log.Info("User is logged out")
	return nil
}

func loginAs(env Env, user, pass string) error {
	login := pages.NewLoginPage(env.Page, env.Log, env.BaseURL)
	if err := login.Goto(); err != nil {
		return err
	}
	return login.Login(user, pass)
}

func expectInventory(env Env) error {
	url, err := env.Page.URL()
	if err != nil {
		return err
	}
	if !strings.Contains(url, "inventory.html") {
		return fmt.Errorf("expected inventory page, got %q", url)
	}

	title, err := pages.NewInventoryPage(env.Page, env.Log).Title()
	if err != nil {
		return err
	}
	return expectEqual("inventory title", "Products", title)
}

func expectLoginPage(menu *pages.MenuPage) error {
	visible, err := menu.LoginPageVisible()
	if err != nil {
		return err
	}
	if !visible {
		return fmt.Errorf("login page is not visible after logout")
	}
	return nil
}

func expectEqual(what, want, got string) error {
	if got != want {
		return fmt.Errorf("%s: expected %q, got %q", what, want, got)
	}
	return nil
}

func expectContains(what, want, got string) error {
	if !strings.Contains(got, want) {
		return fmt.Errorf("%s: expected to contain %q, got %q", what, want, got)
	}
	return nil
}
