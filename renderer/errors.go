package renderer

import "github.com/pkg/errors"

var (
	ErrTreeNotDefined   = errors.New("renderer: no tree defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrInvalidFrameSize = errors.New("renderer: frame dimensions must be positive")
	ErrInterrupted      = errors.New("renderer: interrupted while rendering")
)
