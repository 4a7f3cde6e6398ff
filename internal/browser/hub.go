package browser

import (
	"sync"

	"e2eperf/internal/capture"
)

// hub fans driver events out to capture subscribers. Drivers register one
// listener per session and hand every event to the hub.
type hub struct {
	mu       sync.RWMutex
	next     int
	console  map[int]func(capture.ConsoleMessage)
	requests map[int]func(capture.FinishedRequest)
}

func newHub() *hub {
	return &hub{
		console:  make(map[int]func(capture.ConsoleMessage)),
		requests: make(map[int]func(capture.FinishedRequest)),
	}
}

func (h *hub) SubscribeConsole(handler func(capture.ConsoleMessage)) capture.Unsubscribe {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	h.console[id] = handler
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.console, id)
	}
}

func (h *hub) SubscribeRequestFinished(handler func(capture.FinishedRequest)) capture.Unsubscribe {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	h.requests[id] = handler
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.requests, id)
	}
}

func (h *hub) emitConsole(msg capture.ConsoleMessage) {
	h.mu.RLock()
	handlers := make([]func(capture.ConsoleMessage), 0, len(h.console))
	for _, fn := range h.console {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(msg)
	}
}

func (h *hub) emitRequest(req capture.FinishedRequest) {
	h.mu.RLock()
	handlers := make([]func(capture.FinishedRequest), 0, len(h.requests))
	for _, fn := range h.requests {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(req)
	}
}

func (h *hub) clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.console = make(map[int]func(capture.ConsoleMessage))
	h.requests = make(map[int]func(capture.FinishedRequest))
}
