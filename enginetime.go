package tsgraph

import (
	"fmt"
	"math"
	"time"
)

// EngineTime is the single totally-ordered timestamp used throughout the
// core. It carries microsecond precision and is signed so that callers can
// express times relative to an arbitrary epoch.
type EngineTime int64

const (
	// MinEngineTime is the smallest representable engine time.
	MinEngineTime EngineTime = math.MinInt64
	// MaxEngineTime is the largest representable engine time.
	MaxEngineTime EngineTime = math.MaxInt64
	// EpsEngineTime is the smallest positive delta between two engine times.
	EpsEngineTime EngineTime = 1
)

// NewEngineTime converts a time.Time into an EngineTime at microsecond
// precision.
func NewEngineTime(t time.Time) EngineTime {
	return EngineTime(t.UnixMicro())
}

// Time converts the engine time back to a time.Time, assuming a Unix epoch.
func (t EngineTime) Time() time.Time {
	return time.UnixMicro(int64(t))
}

// Before reports whether t is strictly earlier than u.
func (t EngineTime) Before(u EngineTime) bool { return t < u }

// After reports whether t is strictly later than u.
func (t EngineTime) After(u EngineTime) bool { return t > u }

// Add returns t shifted by the given number of microseconds.
func (t EngineTime) Add(delta EngineTime) EngineTime { return t + delta }

// String renders the engine time for logs and debug panels.
func (t EngineTime) String() string {
	switch t {
	case MinEngineTime:
		return "EngineTime(MIN)"
	case MaxEngineTime:
		return "EngineTime(MAX)"
	default:
		return fmt.Sprintf("EngineTime(%d)", int64(t))
	}
}
