package apilytics

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestDispatcherSubmitNeverBlocks(t *testing.T) {
	// The collector hangs until released, so the workers and the queue
	// saturate. Submitting far more records than the queue holds must
	// still return promptly, dropping the excess.
	release := make(chan struct{})
	var mu sync.Mutex
	received := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		mu.Lock()
		received++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher()
	const submitted = 10 * dispatcherQueue
	for i := 0; i < submitted; i++ {
		d.Submit(Payload{Path: "/", Method: "GET"}, "key", srv.URL, "v")
	}
	close(release)
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	if received == 0 {
		t.Fatal("no records delivered")
	}
	if limit := dispatcherQueue + dispatcherWorkers; received > limit {
		t.Errorf("delivered %d records, want at most %d (rest dropped)", received, limit)
	}
}

func TestDispatcherSwallowsServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDispatcher()
	d.Submit(Payload{Path: "/", Method: "GET"}, "key", srv.URL, "v")
	d.Close()
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher()
	d.Close()
	d.Close()
}

func TestDispatcherSendAddsSystemMetrics(t *testing.T) {
	// System metrics are best-effort: when present they must be sane,
	// and their absence is not a failure.
	srv, rec := newTestCollector(t)

	d := NewDispatcher()
	d.Submit(Payload{Path: "/", Method: "GET"}, "key", srv.URL, "v")
	d.Close()

	records := rec.records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if v, ok := got["cpuUsage"].(float64); ok && (v < 0 || v > 1) {
		t.Errorf("cpuUsage = %v, want within [0, 1]", v)
	}
	if v, ok := got["memoryUsage"].(float64); ok && v <= 0 {
		t.Errorf("memoryUsage = %v, want positive", v)
	}
	used, hasUsed := got["memoryUsage"].(float64)
	total, hasTotal := got["memoryTotal"].(float64)
	if hasUsed && hasTotal && total < used {
		t.Errorf("memoryTotal %v < memoryUsage %v", total, used)
	}
}

func TestDefaultDispatcherIsShared(t *testing.T) {
	if DefaultDispatcher() != DefaultDispatcher() {
		t.Fatal("DefaultDispatcher must return the same instance")
	}
}
