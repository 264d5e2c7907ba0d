package preview

import "errors"

var (
	// ErrRenderFailed occurs when a converted document cannot be rendered
	// for terminal display.
	ErrRenderFailed = errors.New("rendering failed")

	// ErrWatchFailed occurs when a filesystem watch for live reloading
	// cannot be established.
	ErrWatchFailed = errors.New("cannot watch notebook")
)
