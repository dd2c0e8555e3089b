package protocol

import "errors"

var (
	ErrOutOfBounds    = errors.New("protocol: out of bounds")
	ErrNegativeOffset = errors.New("protocol: negative offset")
	ErrValueOverflow  = errors.New("protocol: value overflows field width")
	ErrLayoutMismatch = errors.New("protocol: value count does not match layout")
	ErrInvalidLayout  = errors.New("protocol: invalid layout")
	ErrNilPayload     = errors.New("protocol: nil payload")
	ErrUnknownName    = errors.New("protocol: unknown name")
)
