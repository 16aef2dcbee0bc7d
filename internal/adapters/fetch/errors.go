package fetch

import "errors"

// Sentinel kinds for fetch errors.
var (
	ErrFetch = errors.New("sheet fetch failed")
)
