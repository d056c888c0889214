package calendar

import "errors"

// Calendar domain errors
var (
	// ErrLookupFailed wraps transient store failures; the batch driver retries,
	// the engine itself does not.
	ErrLookupFailed = errors.New("calendar lookup failed")
)
