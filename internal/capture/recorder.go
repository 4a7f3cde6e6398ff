package capture

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"e2eperf/internal/domain"
)

// Recorder buffers the filtered console and API activity of one browser session.
// Handlers may be called from any goroutine; appends keep the order in which
// entries were observed.
type Recorder struct {
	log    logrus.FieldLogger
	filter Filter
	now    func() time.Time

	// pending tracks response resolutions still in flight
	pending errgroup.Group

	mu       sync.Mutex
	console  []domain.ConsoleLogEntry
	apiCalls []domain.APICallEntry
	unsubs   []Unsubscribe
	closed   bool
}

// NewRecorder creates a Recorder that is not yet attached to a session
func NewRecorder(log logrus.FieldLogger, filter Filter) *Recorder {
	return &Recorder{
		log:      log.WithField("component", "event_recorder"),
		filter:   filter,
		now:      time.Now,
		console:  make([]domain.ConsoleLogEntry, 0),
		apiCalls: make([]domain.APICallEntry, 0),
	}
}

// Attach subscribes the recorder to a session's event streams
func (r *Recorder) Attach(src Source) {
	unsubConsole := src.SubscribeConsole(r.OnConsoleMessage)
	unsubRequests := src.SubscribeRequestFinished(r.OnRequestFinished)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.unsubs = append(r.unsubs, unsubConsole, unsubRequests)
}

// OnConsoleMessage records error and warning messages. It never blocks on the
// driver and never panics.
func (r *Recorder) OnConsoleMessage(msg ConsoleMessage) {
	if msg == nil {
		return
	}

	rawType, ok := safeString(msg.Type)
	if !ok {
		r.log.Debug("dropping console message with unreadable type")
		return
	}
	sev := domain.ParseSeverity(rawType)
	if !r.filter.KeepConsole(sev) {
		return
	}

	text, ok := safeString(msg.Text)
	if !ok {
		text = fmt.Sprintf("<unreadable %s message>", sev)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.console = append(r.console, domain.ConsoleLogEntry{Severity: sev, Message: text})
}

// OnRequestFinished resolves the request's response on its own goroutine and
// then appends an entry. Failed resolutions are still recorded with status 0.
func (r *Recorder) OnRequestFinished(req FinishedRequest) {
	if req == nil {
		return
	}
	finishedAt := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.pending.Go(func() error {
		entry, keep := r.resolve(req, finishedAt)
		if !keep {
			return nil
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		r.apiCalls = append(r.apiCalls, entry)
		return nil
	})
}

func (r *Recorder) resolve(req FinishedRequest, finishedAt time.Time) (entry domain.APICallEntry, keep bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.WithField("panic", rec).Debug("request accessor panicked, keeping partial entry")
			entry.StatusCode = 0
			entry.SizeKiloBytes = nil
		}
	}()

	url, _ := safeString(req.URL)
	kind, _ := safeString(req.ResourceType)
	if !r.filter.KeepRequest(kind, url) {
		return entry, false
	}
	keep = true
	method, _ := safeString(req.Method)

	entry = domain.APICallEntry{
		Method:         method,
		URL:            url,
		ResourceKind:   kind,
		DurationMillis: domain.UnknownMillis(),
	}
	if started := req.StartedAt(); !started.IsZero() {
		entry.DurationMillis = domain.MillisOf(finishedAt.Sub(started))
	}

	resp, err := req.Response()
	if err != nil || resp == nil {
		r.log.WithFields(logrus.Fields{
			"url":   url,
			"error": err,
		}).Debug("response unavailable, recording status 0")
		return entry, true
	}
	entry.StatusCode = resp.Status()
	if n, err := resp.BodySize(); err == nil {
		entry.SizeKiloBytes = domain.KiloBytes(n)
	}
	return entry, true
}

// Close detaches from the session, waits for in-flight responses and stops
// accepting events. It is safe to call more than once.
func (r *Recorder) Close() {
	r.mu.Lock()
	unsubs := r.unsubs
	r.unsubs = nil
	r.closed = true
	r.mu.Unlock()

	for _, unsub := range unsubs {
		if unsub != nil {
			unsub()
		}
	}
	_ = r.pending.Wait()
}

// Discard closes the recorder and drops everything buffered so far
func (r *Recorder) Discard() {
	r.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.console = r.console[:0]
	r.apiCalls = r.apiCalls[:0]
}

// ConsoleLogs returns a copy of the buffered console entries
func (r *Recorder) ConsoleLogs() []domain.ConsoleLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.ConsoleLogEntry, len(r.console))
	copy(result, r.console)
	return result
}

// APICalls returns a copy of the buffered API call entries
func (r *Recorder) APICalls() []domain.APICallEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.APICallEntry, len(r.apiCalls))
	copy(result, r.apiCalls)
	return result
}

// safeString calls a driver accessor, reporting false if it panics
func safeString(fn func() string) (s string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			s, ok = "", false
		}
	}()
	return fn(), true
}
