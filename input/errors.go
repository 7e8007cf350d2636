package input

import "errors"

var (
	// ErrNoDevice is returned when a slot has no backing device.
	ErrNoDevice = errors.New("no device")
	// ErrPollFailed wraps a backend read failure.
	ErrPollFailed = errors.New("poll failed")
	// ErrOutputFailed wraps a backend write failure.
	ErrOutputFailed = errors.New("output failed")
	// ErrUnknownFrame is returned for frames the normalizer cannot map.
	ErrUnknownFrame = errors.New("unknown raw frame")
	// ErrInvalidTrigger is returned for a malformed trigger effect.
	ErrInvalidTrigger = errors.New("invalid trigger effect")
	// ErrClosed is returned once the registry has been torn down.
	ErrClosed = errors.New("registry closed")
)
