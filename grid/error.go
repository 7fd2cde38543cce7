package grid

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPixelType = errors.New("unknown pixel type")
	ErrBandOutOfRange   = errors.New("band index out of range")
	ErrShapeMismatch    = errors.New("band shape mismatch")
	ErrNoBands          = errors.New("raster has no bands")
)

// ShapeMismatchError reports two bands that must share a shape but do not.
type ShapeMismatchError struct {
	Band       int
	Rows, Cols int
	WantRows   int
	WantCols   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("band %d is %dx%d, want %dx%d", e.Band, e.Rows, e.Cols, e.WantRows, e.WantCols)
}

func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}
