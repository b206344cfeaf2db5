package rc

import "errors"

var (
	ErrStaleReference = errors.New("stale reference")
)
