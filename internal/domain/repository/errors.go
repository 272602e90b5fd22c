package repository

import "errors"

// ErrDuplicateKey reports a unique-index collision (username or gmail).
var ErrDuplicateKey = errors.New("duplicate key")
