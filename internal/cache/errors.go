package cache

import "errors"

// ErrTypeMismatch is returned by the generic helpers when a key holds a value
// of another type.
var ErrTypeMismatch = errors.New("cached value has unexpected type")
