// Package capturetest provides an in-memory capture.Source for tests.
package capturetest

import (
	"errors"
	"sync"
	"time"

	"e2eperf/internal/capture"
)

// ErrAborted is returned by requests built with Aborted
var ErrAborted = errors.New("request aborted")

// Source is a capture.Source driven by the test
type Source struct {
	mu       sync.Mutex
	next     int
	console  map[int]func(capture.ConsoleMessage)
	requests map[int]func(capture.FinishedRequest)
}

// NewSource creates an empty Source
func NewSource() *Source {
	return &Source{
		console:  make(map[int]func(capture.ConsoleMessage)),
		requests: make(map[int]func(capture.FinishedRequest)),
	}
}

func (s *Source) SubscribeConsole(handler func(capture.ConsoleMessage)) capture.Unsubscribe {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.console[id] = handler
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.console, id)
	}
}

func (s *Source) SubscribeRequestFinished(handler func(capture.FinishedRequest)) capture.Unsubscribe {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.requests[id] = handler
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.requests, id)
	}
}

// Subscribers returns the number of live subscriptions
func (s *Source) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.console) + len(s.requests)
}

// EmitConsole delivers a console message to every console subscriber
func (s *Source) EmitConsole(msgType, text string) {
	s.mu.Lock()
	handlers := make([]func(capture.ConsoleMessage), 0, len(s.console))
	for _, h := range s.console {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(Message{Kind: msgType, Body: text})
	}
}

// EmitRequest delivers a finished request to every request subscriber
func (s *Source) EmitRequest(req capture.FinishedRequest) {
	s.mu.Lock()
	handlers := make([]func(capture.FinishedRequest), 0, len(s.requests))
	for _, h := range s.requests {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(req)
	}
}

// Message is a static console message
type Message struct {
	Kind string
	Body string
}

func (m Message) Type() string { return m.Kind }
func (m Message) Text() string { return m.Body }

// Request is a static finished request. If Gate is set, Response blocks until
// it is closed.
type Request struct {
	Verb    string
	Address string
	Kind    string
	Started time.Time
	Code    int
	Size    int
	Err     error
	Gate    chan struct{}
}

// Aborted builds a request whose response never resolves
func Aborted(method, url, kind string) *Request {
	return &Request{Verb: method, Address: url, Kind: kind, Err: ErrAborted}
}

func (r *Request) Method() string       { return r.Verb }
func (r *Request) URL() string          { return r.Address }
func (r *Request) ResourceType() string { return r.Kind }
func (r *Request) StartedAt() time.Time { return r.Started }

func (r *Request) Response() (capture.Response, error) {
	if r.Gate != nil {
		<-r.Gate
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return response{code: r.Code, size: r.Size}, nil
}

type response struct {
	code int
	size int
}

func (r response) Status() int            { return r.code }
func (r response) BodySize() (int, error) { return r.size, nil }
