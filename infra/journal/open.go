package journal

import (
	"fmt"

	corejournal "github.com/kilianp07/offshore/core/journal"
)

// Backends accepted by Open.
const (
	BackendJSONL    = "jsonl"
	BackendRotating = "rotating"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Options selects and tunes a journal backend.
type Options struct {
	Backend    string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Open builds the journal described by o.
func Open(o Options) (corejournal.Journal, error) {
	switch o.Backend {
	case BackendJSONL, "":
		return NewJSONLStore(o.Path)
	case BackendRotating:
		return NewRotatingJSONLStore(o.Path, o.MaxSizeMB, o.MaxBackups, o.MaxAgeDays)
	case BackendSQLite:
		return NewSQLiteStore(o.Path)
	case BackendMemory:
		return corejournal.NewMemoryJournal(), nil
	default:
		return nil, fmt.Errorf("unknown journal backend %q", o.Backend)
	}
}
