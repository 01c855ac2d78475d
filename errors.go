package vaultprint

import "errors"

// ErrClosed is returned when a closed [Printer] is used.
var ErrClosed = errors.New("vaultprint: printer is closed")
