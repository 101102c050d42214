package ingestion

import (
	"errors"
	"fmt"
)

// errPlatformSource rejects scraped records claiming the internal source.
var errPlatformSource = errors.New("source \"platform\" is reserved for internally authored jobs")

// ErrStoreUnavailable marks a storage failure mid-batch. Unlike a malformed
// record, an outage says nothing about the remaining records, so the batch
// aborts instead of folding the failure into the per-record error count.
var ErrStoreUnavailable = errors.New("ingestion store unavailable")

// RecordError describes why a single record in a batch was rejected. The
// batch as a whole keeps going; callers report these per-record.
type RecordError struct {
	Index      int
	ExternalID string
	Source     string
	Cause      error
}

func (e *RecordError) Error() string {
	if e.ExternalID != "" {
		return fmt.Sprintf("record %d (%s/%s): %v", e.Index, e.Source, e.ExternalID, e.Cause)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Cause)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}
