package apilytics

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Sender orchestrates telemetry for a single handled request: it starts
// timing at construction, receives response info when the adapter has it,
// and on Send hands the finished record to a background dispatcher.
//
// A Sender is owned by exactly one request invocation and must not be
// shared across requests. Send is safe to defer and to call more than
// once; only the first call finalizes the record.
//
// Constructed without an API key, a Sender is dormant: every method is a
// no-op and no dispatcher is ever touched, so an unset key in development
// costs nothing.
type Sender struct {
	apiKey      string
	endpoint    string
	integration string
	library     string
	dispatcher  *Dispatcher

	timer   timer
	payload Payload

	dormant bool
	done    atomic.Bool
	once    sync.Once
}

// Option configures a Sender at construction time.
type Option func(*Sender)

// WithQuery records the raw query string of the request. Empty strings
// are treated as absent.
func WithQuery(query string) Option {
	return func(s *Sender) { s.payload.Query = query }
}

// WithRequestSize records the size of the request body in bytes.
func WithRequestSize(size int64) Option {
	return func(s *Sender) { s.payload.RequestSize = &size }
}

// WithUserAgent records the request's User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(s *Sender) { s.payload.UserAgent = ua }
}

// WithIP records the client IP address. It is used by the collector for
// geolocation only and is never passed on to third parties.
func WithIP(ip string) Option {
	return func(s *Sender) { s.payload.IP = ip }
}

// WithIntegration names the framework adapter producing this record,
// e.g. ("apilytics-go-chi", "chi/5.2.3"). Adapters set this; there is no
// need to when calling from application code.
func WithIntegration(integration, library string) Option {
	return func(s *Sender) {
		s.integration = integration
		s.library = library
	}
}

// WithEndpoint overrides the collector URL. Intended for self-hosted
// collectors and tests.
func WithEndpoint(url string) Option {
	return func(s *Sender) { s.endpoint = url }
}

// WithDispatcher makes the sender submit to the given dispatcher instead
// of the shared process-wide one.
func WithDispatcher(d *Dispatcher) Option {
	return func(s *Sender) { s.dispatcher = d }
}

// New creates a Sender for one request and starts its timer. Path and
// method are required; everything else arrives through options. An empty
// apiKey returns a dormant sender whose methods all do nothing.
func New(apiKey, path, method string, opts ...Option) *Sender {
	s := &Sender{
		apiKey: apiKey,
		payload: Payload{
			Path:   path,
			Method: method,
		},
	}
	if apiKey == "" {
		s.dormant = true
		return s
	}

	s.timer = newTimer()
	for _, opt := range opts {
		opt(s)
	}
	if s.endpoint == "" {
		s.endpoint = DefaultEndpoint
	}
	return s
}

// SetResponseInfo records the response status code and body size. Either
// argument may be nil when the adapter could not determine the value, in
// which case the corresponding field is omitted from the record — a
// streamed response with no known size must not be reported as zero
// bytes.
//
// Calling it after Send, or on a dormant sender, is a no-op.
func (s *Sender) SetResponseInfo(statusCode *int, responseSize *int64) {
	if s.dormant || s.done.Load() {
		return
	}
	s.payload.StatusCode = statusCode
	s.payload.ResponseSize = responseSize
}

// SetRoute replaces the recorded path with the matched route pattern,
// e.g. "/users/{id}" instead of "/users/42". Routers only know the
// pattern after dispatch, so adapters call this once the handler has run.
// Empty patterns are ignored; calls after Send are no-ops.
func (s *Sender) SetRoute(route string) {
	if s.dormant || s.done.Load() || route == "" {
		return
	}
	s.payload.Path = route
}

// Send finalizes the record and submits it for background delivery.
// Exactly one call has an effect; adapters defer it at request entry so
// that the record goes out on every exit path, including a panicking
// handler. No failure inside Send ever reaches the caller.
func (s *Sender) Send() {
	if s.dormant {
		return
	}
	s.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				log.Debug().Interface("panic", r).Msg("apilytics: suppressed failure while finalizing record")
			}
		}()

		s.done.Store(true)
		s.payload.TimeMillis = s.timer.elapsedMillis()

		d := s.dispatcher
		if d == nil {
			d = DefaultDispatcher()
		}
		d.Submit(s.payload, s.apiKey, s.endpoint, versionHeader(s.integration, s.library))
	})
}
