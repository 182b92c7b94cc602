package repository

import "errors"

// ErrNotFound is returned by every repository when no live row matches.
var ErrNotFound = errors.New("not found")
