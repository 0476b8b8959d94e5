package linktest

import (
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Metrics tracks exchange statistics for a running role.
type Metrics struct {
	LinesRead    atomic.Int64
	LinesWritten atomic.Int64
	BytesRead    atomic.Int64
	BytesWritten atomic.Int64

	ReadTimeouts   atomic.Int64 // reads that ended before a delimiter arrived
	DecodeFailures atomic.Int64 // payloads that were not valid text
	Mismatches     atomic.Int64 // client exchanges that failed comparison
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	LinesRead      int64
	LinesWritten   int64
	BytesRead      int64
	BytesWritten   int64
	ReadTimeouts   int64
	DecodeFailures int64
	Mismatches     int64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		LinesRead:      m.LinesRead.Load(),
		LinesWritten:   m.LinesWritten.Load(),
		BytesRead:      m.BytesRead.Load(),
		BytesWritten:   m.BytesWritten.Load(),
		ReadTimeouts:   m.ReadTimeouts.Load(),
		DecodeFailures: m.DecodeFailures.Load(),
		Mismatches:     m.Mismatches.Load(),
	}
}

// MarshalZerologObject lets a snapshot be logged as a structured field set.
func (s MetricsSnapshot) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("lines_read", s.LinesRead).
		Int64("lines_written", s.LinesWritten).
		Int64("bytes_read", s.BytesRead).
		Int64("bytes_written", s.BytesWritten).
		Int64("read_timeouts", s.ReadTimeouts).
		Int64("decode_failures", s.DecodeFailures).
		Int64("mismatches", s.Mismatches)
}
