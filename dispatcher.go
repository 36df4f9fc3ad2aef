package apilytics

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/apilytics/apilytics-go/internal/sysmetrics"
	"github.com/apilytics/apilytics-go/pkg/bufpool"
)

const (
	dispatcherWorkers = 2
	dispatcherQueue   = 64
	sendTimeout       = 5 * time.Second
)

// job is one record queued for delivery.
type job struct {
	payload  Payload
	apiKey   string
	endpoint string
	version  string
}

// Dispatcher delivers telemetry records to the collector from a small
// fixed pool of background workers. Submit never blocks the caller: when
// the queue is full the record is dropped. Delivery is best-effort — a
// failed send is logged at debug level and forgotten, never retried.
type Dispatcher struct {
	jobs      chan job
	wg        sync.WaitGroup
	client    *retryablehttp.Client
	closeOnce sync.Once
}

// NewDispatcher starts a dispatcher with its own worker pool. Most
// applications never call this: senders share a lazily created
// process-wide dispatcher. Constructing one explicitly is useful in tests
// and in hosts that want to drain telemetry on shutdown via Close.
func NewDispatcher() *Dispatcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.Logger = nil
	client.HTTPClient.Timeout = sendTimeout

	d := &Dispatcher{
		jobs:   make(chan job, dispatcherQueue),
		client: client,
	}
	for i := 0; i < dispatcherWorkers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

var (
	defaultDispatcher     *Dispatcher
	defaultDispatcherOnce sync.Once
)

// DefaultDispatcher returns the shared process-wide dispatcher, creating
// it on first use.
func DefaultDispatcher() *Dispatcher {
	defaultDispatcherOnce.Do(func() {
		defaultDispatcher = NewDispatcher()
	})
	return defaultDispatcher
}

// Submit enqueues one record for asynchronous delivery and returns
// immediately. If the queue is saturated the record is dropped: losing a
// telemetry record is preferable to blocking a request or growing the
// queue without bound.
func (d *Dispatcher) Submit(p Payload, apiKey, endpoint, version string) {
	select {
	case d.jobs <- job{payload: p, apiKey: apiKey, endpoint: endpoint, version: version}:
	default:
		log.Debug().Str("path", p.Path).Msg("apilytics: dispatch queue full, dropping record")
	}
}

// Close stops accepting work, waits for queued records to be delivered
// and shuts the workers down. Submitting after Close is invalid.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.jobs)
		d.wg.Wait()
	})
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for j := range d.jobs {
		if err := d.send(j); err != nil {
			log.Debug().Err(err).Str("path", j.payload.Path).Msg("apilytics: delivery failed")
		}
	}
}

// send enriches the record with a system metrics snapshot and posts it to
// the collector. It runs on a worker goroutine, so blocking on network
// I/O here never affects a request.
func (d *Dispatcher) send(j job) error {
	payload := j.payload.withSystemMetrics(sysmetrics.Collect())

	buf := bufpool.Get()
	defer bufpool.Put(buf)

	if err := json.NewEncoder(buf).Encode(&payload); err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := retryablehttp.NewRequest(http.MethodPost, j.endpoint, buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", j.apiKey)
	req.Header.Set("Apilytics-Version", j.version)

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
