package apilytics

import (
	"github.com/apilytics/apilytics-go/internal/sysmetrics"
)

// Payload is the telemetry record sent to the collector for one handled
// request. Field names match the collector's wire format.
//
// Only Path, Method and TimeMillis are always present. Every other field
// uses a pointer (or an empty string) with omitempty so that an unknown
// value is left out of the serialized record entirely. A response size of
// zero and an unknown response size are different things, and the
// collector must be able to tell them apart.
type Payload struct {
	Path       string  `json:"path"`
	Method     string  `json:"method"`
	TimeMillis float64 `json:"timeMillis"`

	Query        string `json:"query,omitempty"`
	StatusCode   *int   `json:"statusCode,omitempty"`
	RequestSize  *int64 `json:"requestSize,omitempty"`
	ResponseSize *int64 `json:"responseSize,omitempty"`
	UserAgent    string `json:"userAgent,omitempty"`
	IP           string `json:"ip,omitempty"`

	CPUUsage    *float64 `json:"cpuUsage,omitempty"`
	MemoryUsage *uint64  `json:"memoryUsage,omitempty"`
	MemoryTotal *uint64  `json:"memoryTotal,omitempty"`
}

// withSystemMetrics returns a copy of the payload enriched with a system
// metrics snapshot. Absent snapshot fields stay absent in the payload.
func (p Payload) withSystemMetrics(snap sysmetrics.Snapshot) Payload {
	p.CPUUsage = snap.CPUUsage
	p.MemoryUsage = snap.MemoryUsage
	p.MemoryTotal = snap.MemoryTotal
	return p
}

// Int returns a pointer to v. Convenience for filling optional payload
// fields and SetResponseInfo arguments.
func Int(v int) *int {
	return &v
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}
