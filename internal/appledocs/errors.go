package appledocs

import "errors"

var (
	ErrInvalidURL  = errors.New("URL must be from developer.apple.com")
	ErrNotFound    = errors.New("documentation not found (404); the URL may have been moved or removed")
	ErrFetchFailed = errors.New("failed to fetch data from Apple Developer Documentation")
	ErrParseFailed = errors.New("failed to parse response data")
)
