package eventstream

import "errors"

// ErrNilEvent indicates a nil event payload was provided to a publisher.
var ErrNilEvent = errors.New("nil reminder event")

// ErrNilListener is returned when registering a nil listener.
var ErrNilListener = errors.New("listener must not be nil")
