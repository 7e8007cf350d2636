package dualsense

import "errors"

var (
	ErrShortReport   = errors.New("short input report")
	ErrUnknownReport = errors.New("unknown input report")
)
