package database

import "errors"

// ErrNotReady is returned by Check until the startup ping has succeeded,
// and again after shutdown closes the pool.
var ErrNotReady = errors.New("database not ready")
