// Package capture turns a browser session's raw console and network events into
// the normalized entries used by test run records.
package capture

import "time"

// ConsoleMessage is a console event as exposed by a browser driver
type ConsoleMessage interface {
	Type() string
	Text() string
}

// Response is the resolved response of a finished request
type Response interface {
	Status() int
	// BodySize returns the response body length in bytes
	BodySize() (int, error)
}

// FinishedRequest is a network request the browser has finished
type FinishedRequest interface {
	Method() string
	URL() string
	ResourceType() string
	// StartedAt is the zero time when the driver does not know when the request began
	StartedAt() time.Time
	// Response may block until the driver delivers the response
	Response() (Response, error)
}

// Unsubscribe detaches a handler registered on a Source
type Unsubscribe func()

// Source emits the events of one browser session
type Source interface {
	SubscribeConsole(handler func(ConsoleMessage)) Unsubscribe
	SubscribeRequestFinished(handler func(FinishedRequest)) Unsubscribe
}
