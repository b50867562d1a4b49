package generator

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrRenderFailure   = errors.New("render failed")
	ErrEncodingFailure = errors.New("image encoding failed")
	ErrInvalidPalette  = errors.New("invalid palette")
)
