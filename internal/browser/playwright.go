package browser

import (
	"fmt"
	"math"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"e2eperf/internal/capture"
	"e2eperf/internal/config"
)

type playwrightBrowser struct {
	log     logrus.FieldLogger
	pw      *playwright.Playwright
	browser playwright.Browser
	timeout time.Duration
}

func launchPlaywright(cfg *config.Config, log logrus.FieldLogger) (Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	log.Debug("Chromium launched")
	return &playwrightBrowser{log: log, pw: pw, browser: browser, timeout: cfg.Timeout}, nil
}

func (b *playwrightBrowser) NewSession() (Session, error) {
	bctx, err := b.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultTimeout(float64(b.timeout.Milliseconds()))

	s := &playwrightSession{hub: newHub(), bctx: bctx, page: page}
	page.OnConsole(func(msg playwright.ConsoleMessage) {
		s.emitConsole(msg)
	})
	page.OnRequestFinished(func(req playwright.Request) {
		s.emitRequest(playwrightRequest{req: req})
	})
	page.OnRequestFailed(func(req playwright.Request) {
		s.emitRequest(playwrightRequest{req: req, failed: true})
	})
	return s, nil
}

func (b *playwrightBrowser) Close() error {
	if err := b.browser.Close(); err != nil {
		_ = b.pw.Stop()
		return fmt.Errorf("failed to close browser: %w", err)
	}
	if err := b.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}

type playwrightSession struct {
	*hub
	bctx playwright.BrowserContext
	page playwright.Page
}

func (s *playwrightSession) Page() Page { return s }

func (s *playwrightSession) Close() error {
	s.clear()
	if err := s.bctx.Close(); err != nil {
		return fmt.Errorf("failed to close browser context: %w", err)
	}
	return nil
}

func (s *playwrightSession) Goto(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) Fill(selector, value string) error {
	if err := s.page.Locator(selector).Fill(value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (s *playwrightSession) Click(selector string) error {
	if err := s.page.Locator(selector).Click(); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (s *playwrightSession) WaitVisible(selector string) error {
	err := s.page.Locator(selector).WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	})
	if err != nil {
		return fmt.Errorf("wait for %s: %w", selector, err)
	}
	return nil
}

func (s *playwrightSession) Text(selector string) (string, error) {
	text, err := s.page.Locator(selector).TextContent()
	if err != nil {
		return "", fmt.Errorf("text of %s: %w", selector, err)
	}
	return text, nil
}

func (s *playwrightSession) IsVisible(selector string) (bool, error) {
	visible, err := s.page.Locator(selector).IsVisible()
	if err != nil {
		return false, fmt.Errorf("visibility of %s: %w", selector, err)
	}
	return visible, nil
}

func (s *playwrightSession) Attribute(selector, name string) (string, error) {
	value, err := s.page.Locator(selector).GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("attribute %s of %s: %w", name, selector, err)
	}
	return value, nil
}

func (s *playwrightSession) URL() (string, error) {
	return s.page.URL(), nil
}

// playwrightRequest exposes a finished or failed playwright request.
type playwrightRequest struct {
	req    playwright.Request
	failed bool
}

func (r playwrightRequest) Method() string       { return r.req.Method() }
func (r playwrightRequest) URL() string          { return r.req.URL() }
func (r playwrightRequest) ResourceType() string { return r.req.ResourceType() }

func (r playwrightRequest) StartedAt() time.Time {
	timing := r.req.Timing()
	if timing == nil || timing.StartTime <= 0 {
		return time.Time{}
	}
	return fromEpochMillis(timing.StartTime)
}

// fromEpochMillis keeps the sub-millisecond part of playwright's float timestamps.
func fromEpochMillis(ms float64) time.Time {
	return time.UnixMicro(int64(math.Round(ms * 1000)))
}

func (r playwrightRequest) Response() (capture.Response, error) {
	if r.failed {
		return nil, fmt.Errorf("request failed: %v", r.req.Failure())
	}
	resp, err := r.req.Response()
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("no response for %s", r.req.URL())
	}
	return playwrightResponse{resp: resp}, nil
}

type playwrightResponse struct {
	resp playwright.Response
}

func (r playwrightResponse) Status() int { return r.resp.Status() }

func (r playwrightResponse) BodySize() (int, error) {
	body, err := r.resp.Body()
	if err != nil {
		return 0, err
	}
	return len(body), nil
}
