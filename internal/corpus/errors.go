package corpus

import "errors"

var (
	ErrDataUnavailable = errors.New("wwdc data unavailable")
	ErrVideoNotFound   = errors.New("video not found")
	ErrIndexNotFound   = errors.New("precomputed index not found")
)
