package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"e2eperf/internal/capture"
	"e2eperf/internal/config"
)

type chromedpBrowser struct {
	log         logrus.FieldLogger
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
}

func launchChromedp(cfg *config.Config, log logrus.FieldLogger) (Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &chromedpBrowser{
		log:         log,
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		timeout:     cfg.Timeout,
	}, nil
}

func (b *chromedpBrowser) NewSession() (Session, error) {
	tabCtx, cancel := chromedp.NewContext(b.allocCtx, chromedp.WithLogf(b.log.Debugf))
	s := &chromedpSession{
		hub:     newHub(),
		ctx:     tabCtx,
		cancel:  cancel,
		timeout: b.timeout,
		pending: make(map[network.RequestID]*chromedpRequest),
	}
	s.fetchBody = s.responseBody
	chromedp.ListenTarget(tabCtx, s.onEvent)

	if err := chromedp.Run(tabCtx, network.Enable(), runtime.Enable()); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start chrome tab: %w", err)
	}
	return s, nil
}

func (b *chromedpBrowser) Close() error {
	b.allocCancel()
	return nil
}

type chromedpSession struct {
	*hub
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration

	mu      sync.Mutex
	pending map[network.RequestID]*chromedpRequest

	// fetchBody loads a finished response body; replaced in tests
	fetchBody func(network.RequestID) ([]byte, error)
}

func (s *chromedpSession) Page() Page { return s }

func (s *chromedpSession) Close() error {
	s.clear()
	s.cancel()
	return nil
}

// onEvent runs on the chromedp event goroutine and must not block.
func (s *chromedpSession) onEvent(ev interface{}) {
	switch ev := ev.(type) {
	case *runtime.EventConsoleAPICalled:
		s.emitConsole(chromedpConsole{kind: string(ev.Type), text: consoleText(ev.Args)})

	case *network.EventRequestWillBeSent:
		req := &chromedpRequest{
			id:     ev.RequestID,
			method: ev.Request.Method,
			url:    ev.Request.URL,
			kind:   strings.ToLower(string(ev.Type)),
		}
		if ev.WallTime != nil {
			req.started = ev.WallTime.Time()
		}
		s.mu.Lock()
		s.pending[ev.RequestID] = req
		s.mu.Unlock()

	case *network.EventResponseReceived:
		s.mu.Lock()
		if req, ok := s.pending[ev.RequestID]; ok && ev.Response != nil {
			req.status = int(ev.Response.Status)
		}
		s.mu.Unlock()

	case *network.EventLoadingFinished:
		if req := s.take(ev.RequestID); req != nil {
			req.body = s.fetchBody
			s.emitRequest(req)
		}

	case *network.EventLoadingFailed:
		if req := s.take(ev.RequestID); req != nil {
			req.err = errors.New(ev.ErrorText)
			s.emitRequest(req)
		}
	}
}

func (s *chromedpSession) take(id network.RequestID) *chromedpRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.pending[id]
	if !ok {
		return nil
	}
	delete(s.pending, id)
	return req
}

// responseBody must not be called from onEvent: it round-trips to the browser.
func (s *chromedpSession) responseBody(id network.RequestID) ([]byte, error) {
	var body []byte
	err := s.run(chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		body, err = network.GetResponseBody(id).Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("response body of %s: %w", id, err)
	}
	return body, nil
}

func (s *chromedpSession) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (s *chromedpSession) Goto(url string) error {
	if err := s.run(chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

func (s *chromedpSession) Fill(selector, value string) error {
	err := s.run(
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (s *chromedpSession) Click(selector string) error {
	err := s.run(
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

func (s *chromedpSession) WaitVisible(selector string) error {
	if err := s.run(chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for %s: %w", selector, err)
	}
	return nil
}

func (s *chromedpSession) Text(selector string) (string, error) {
	var text string
	err := s.run(
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Text(selector, &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("text of %s: %w", selector, err)
	}
	return text, nil
}

func (s *chromedpSession) IsVisible(selector string) (bool, error) {
	script, err := visibilityScript(selector)
	if err != nil {
		return false, err
	}
	var visible bool
	if err := s.run(chromedp.Evaluate(script, &visible)); err != nil {
		return false, fmt.Errorf("visibility of %s: %w", selector, err)
	}
	return visible, nil
}

// visibilityScript reports whether the first match has a rendered box and is
// not hidden by style. A missing element is not visible.
func visibilityScript(selector string) (string, error) {
	quoted, err := json.Marshal(selector)
	if err != nil {
		return "", fmt.Errorf("quote selector %s: %w", selector, err)
	}
	return fmt.Sprintf(`(() => {
	const el = document.querySelector(%s);
	if (!el) return false;
	const style = window.getComputedStyle(el);
	if (style.visibility === "hidden" || style.display === "none") return false;
	const rect = el.getBoundingClientRect();
	return rect.width > 0 && rect.height > 0;
})()`, quoted), nil
}

func (s *chromedpSession) Attribute(selector, name string) (string, error) {
	var (
		value string
		found bool
	)
	err := s.run(
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.AttributeValue(selector, name, &value, &found, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("attribute %s of %s: %w", name, selector, err)
	}
	return value, nil
}

func (s *chromedpSession) URL() (string, error) {
	var url string
	if err := s.run(chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("location: %w", err)
	}
	return url, nil
}

type chromedpConsole struct {
	kind string
	text string
}

func (m chromedpConsole) Type() string { return m.kind }
func (m chromedpConsole) Text() string { return m.text }

// consoleText joins console arguments the way the devtools console prints
// them: strings unquoted, other values by their JSON or description.
func consoleText(args []*runtime.RemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == nil {
			continue
		}
		switch {
		case len(arg.Value) > 0:
			var s string
			if err := json.Unmarshal(arg.Value, &s); err == nil {
				parts = append(parts, s)
			} else {
				parts = append(parts, string(arg.Value))
			}
		case arg.Description != "":
			parts = append(parts, arg.Description)
		default:
			parts = append(parts, string(arg.Type))
		}
	}
	return strings.Join(parts, " ")
}

// chromedpRequest is assembled from the network domain events of one request.
type chromedpRequest struct {
	id      network.RequestID
	method  string
	url     string
	kind    string
	started time.Time
	status  int
	body    func(network.RequestID) ([]byte, error)
	err     error
}

func (r *chromedpRequest) Method() string       { return r.method }
func (r *chromedpRequest) URL() string          { return r.url }
func (r *chromedpRequest) ResourceType() string { return r.kind }
func (r *chromedpRequest) StartedAt() time.Time { return r.started }

func (r *chromedpRequest) Response() (capture.Response, error) {
	if r.err != nil {
		return nil, r.err
	}
	return chromedpResponse{id: r.id, status: r.status, body: r.body}, nil
}

type chromedpResponse struct {
	id     network.RequestID
	status int
	body   func(network.RequestID) ([]byte, error)
}

func (r chromedpResponse) Status() int { return r.status }

// BodySize is the decoded body length, not the transfer size.
func (r chromedpResponse) BodySize() (int, error) {
	if r.body == nil {
		return 0, errors.New("response body unavailable")
	}
	body, err := r.body(r.id)
	if err != nil {
		return 0, err
	}
	return len(body), nil
}
