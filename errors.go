package gcnkit

import "errors"

var (
	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("gcnkit: invalid configuration")

	// ErrNoRecords is returned when an ingestion path contains no
	// extraction records.
	ErrNoRecords = errors.New("gcnkit: no extraction records found")
)
