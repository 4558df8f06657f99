package extract

import "errors"

var (
	// ErrNoSegments is returned when splitting yields zero segments.
	// There is nothing to extract; the run aborts.
	ErrNoSegments = errors.New("extract: no segments found in input text")

	// ErrClassification is returned when the classifier call fails or its
	// output length disagrees with the segment count. The run aborts.
	ErrClassification = errors.New("extract: paragraph classification failed")

	// ErrMandatory is returned when the mandatory header label cannot be
	// extracted. The document is unparseable without header metadata.
	ErrMandatory = errors.New("extract: mandatory header extraction failed")
)
