package eq

import "errors"

var (
	// ErrInvalidSampleRate is returned when a sample rate is not positive and finite.
	ErrInvalidSampleRate = errors.New("eq: invalid sample rate")
	// ErrInvalidBlockSize is returned when a maximum block size is not positive.
	ErrInvalidBlockSize = errors.New("eq: invalid block size")
)
