package collage

import "errors"

var (
	ErrIndexOutOfRange    = errors.New("pattern index out of range")
	ErrMalformedIndexSpec = errors.New("malformed index spec")
	ErrInvalidSourceName  = errors.New("invalid source name")
	ErrIdentityUnnamed    = errors.New("identity variant has no separate name")
	ErrEmptyImage         = errors.New("empty source image")
	ErrSizeMismatch       = errors.New("tile images differ in size")
	ErrInvalidPattern     = errors.New("pattern holds an unknown variant")
)
