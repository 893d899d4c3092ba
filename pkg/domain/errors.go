package domain

import "errors"

// ErrPoolClosed is returned when work is submitted to a closed worker pool.
var ErrPoolClosed = errors.New("worker pool closed")

// ErrUnknownCommand is returned when a label matches no registered command.
var ErrUnknownCommand = errors.New("unknown command")
