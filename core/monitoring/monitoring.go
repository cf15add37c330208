package monitoring

import (
	"errors"
	"time"
)

// Monitor defines methods used for error reporting.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	// AddBreadcrumb records a platform occurrence attached to later captures.
	AddBreadcrumb(category, message string, data map[string]any)
	Recover()
	Flush(timeout time.Duration)
}

// Tagged is implemented by errors that know where in a run they happened.
type Tagged interface {
	Tags() map[string]string
}

// NopMonitor discards everything.
type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string)    {}
func (NopMonitor) AddBreadcrumb(string, string, map[string]any) {}
func (NopMonitor) Recover()                                     {}
func (NopMonitor) Flush(time.Duration)                          {}

var current Monitor = NopMonitor{}

// Init sets the global monitor implementation.
func Init(m Monitor) {
	if m != nil {
		current = m
	}
}

// CaptureException records the error. Tags carried by errors in the chain
// are added to tags; explicit tags win on conflicts.
func CaptureException(err error, tags map[string]string) {
	if current == nil || err == nil {
		return
	}
	current.CaptureException(err, TagsOf(err, tags))
}

// TagsOf merges the tags of every Tagged error in the chain with extra.
func TagsOf(err error, extra map[string]string) map[string]string {
	var merged map[string]string
	for e := err; e != nil; e = errors.Unwrap(e) {
		t, ok := e.(Tagged)
		if !ok {
			continue
		}
		for k, v := range t.Tags() {
			if merged == nil {
				merged = make(map[string]string)
			}
			if _, set := merged[k]; !set {
				merged[k] = v
			}
		}
	}
	if merged == nil {
		return extra
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// AddBreadcrumb records a platform occurrence such as a docked ship.
func AddBreadcrumb(category, message string, data map[string]any) {
	if current != nil {
		current.AddBreadcrumb(category, message, data)
	}
}

// Recover captures panics in goroutines.
func Recover() {
	if current != nil {
		current.Recover()
	}
}

// Flush flushes buffered events.
func Flush(d time.Duration) {
	if current != nil {
		current.Flush(d)
	}
}
