package assets

import "errors"

var (
	// ErrEmptyPath indicates an upload was requested without a local file path.
	ErrEmptyPath = errors.New("asset path must not be empty")
	// ErrEmptyFile indicates the local file has no content.
	ErrEmptyFile = errors.New("asset file is empty")
)
