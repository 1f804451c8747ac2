package errors

import "errors"

// ErrDuplicateKey a unique constraint rejected the write
var ErrDuplicateKey = errors.New("duplicate key violates unique constraint")
