package memory

import "errors"

// ErrUnknownKind is returned when recalling a fact kind that does not exist.
var ErrUnknownKind = errors.New("unknown fact kind")
