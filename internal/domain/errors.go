package domain

import "errors"

var (
	// ErrTransient marks failures that are retried after a fixed delay
	ErrTransient = errors.New("transient failure")

	// ErrMalformed marks an upstream payload that could not be understood.
	// It is displayed as "nothing playing".
	ErrMalformed = errors.New("malformed payload")

	// ErrUnsupportedEncoding marks artwork the pipeline cannot decode. It is fatal.
	ErrUnsupportedEncoding = errors.New("unsupported image encoding")

	// ErrMailboxFull is returned by a dropping mailbox when it has no room
	ErrMailboxFull = errors.New("mailbox full")
)
