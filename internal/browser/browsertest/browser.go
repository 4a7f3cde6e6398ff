// Package browsertest provides an in-memory browser for tests.
package browsertest

import (
	"fmt"
	"sync"

	"e2eperf/internal/browser"
	"e2eperf/internal/capture/capturetest"
)

// Page records actions and answers queries from canned values.
type Page struct {
	mu sync.Mutex

	Texts   map[string]string
	Visible map[string]bool
	Attrs   map[string]string // keyed by "selector@name"
	Errors  map[string]error  // keyed by selector or url
	Current string

	// OnAction runs after each recorded action, e.g. to emit driver events.
	OnAction func(action string)

	actions []string
}

// NewPage builds an empty page
func NewPage() *Page {
	return &Page{
		Texts:   make(map[string]string),
		Visible: make(map[string]bool),
		Attrs:   make(map[string]string),
		Errors:  make(map[string]error),
	}
}

// Actions returns the recorded actions in order
func (p *Page) Actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.actions...)
}

func (p *Page) record(action, key string) error {
	p.mu.Lock()
	p.actions = append(p.actions, action)
	err := p.Errors[key]
	hook := p.OnAction
	p.mu.Unlock()

	if hook != nil {
		hook(action)
	}
	return err
}

func (p *Page) Goto(url string) error {
	if err := p.record("goto "+url, url); err != nil {
		return err
	}
	p.mu.Lock()
	p.Current = url
	p.mu.Unlock()
	return nil
}

func (p *Page) Fill(selector, value string) error {
	return p.record(fmt.Sprintf("fill %s=%s", selector, value), selector)
}

func (p *Page) Click(selector string) error {
	return p.record("click "+selector, selector)
}

func (p *Page) WaitVisible(selector string) error {
	return p.record("wait "+selector, selector)
}

func (p *Page) Text(selector string) (string, error) {
	if err := p.record("text "+selector, selector); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Texts[selector], nil
}

func (p *Page) IsVisible(selector string) (bool, error) {
	if err := p.record("visible "+selector, selector); err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Visible[selector], nil
}

func (p *Page) Attribute(selector, name string) (string, error) {
	if err := p.record("attr "+selector+"@"+name, selector); err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Attrs[selector+"@"+name], nil
}

func (p *Page) URL() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Current, nil
}

// Session pairs a fake page with a fake event source.
type Session struct {
	*capturetest.Source
	Fake *Page

	mu     sync.Mutex
	closed bool
}

// NewSession builds a session over a fresh page
func NewSession() *Session {
	return &Session{Source: capturetest.NewSource(), Fake: NewPage()}
}

func (s *Session) Page() browser.Page { return s.Fake }

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether Close was called
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Browser hands out sessions built by Prepare, or fresh ones.
type Browser struct {
	mu sync.Mutex

	// Prepare customises each new session before it is returned.
	Prepare    func(s *Session)
	SessionErr error

	sessions []*Session
	closed   bool
}

// NewBrowser builds an empty fake browser
func NewBrowser() *Browser {
	return &Browser{}
}

func (b *Browser) NewSession() (browser.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SessionErr != nil {
		return nil, b.SessionErr
	}
	s := NewSession()
	if b.Prepare != nil {
		b.Prepare(s)
	}
	b.sessions = append(b.sessions, s)
	return s, nil
}

func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Sessions returns every session handed out so far
func (b *Browser) Sessions() []*Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Session(nil), b.sessions...)
}

// Closed reports whether Close was called
func (b *Browser) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
