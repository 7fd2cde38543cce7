package grid

import (
	"fmt"
	"math"
	"strings"
)

// PixelType is the numeric storage type of a raster's bands.
type PixelType int

const (
	Unknown PixelType = iota
	Byte
	UInt16
	Int16
	UInt32
	Int32
	Float32
	Float64
)

var pixelNames = [...]string{
	Unknown: "Unknown",
	Byte:    "Byte",
	UInt16:  "UInt16",
	Int16:   "Int16",
	UInt32:  "UInt32",
	Int32:   "Int32",
	Float32: "Float32",
	Float64: "Float64",
}

func (p PixelType) String() string {
	if p < 0 || int(p) >= len(pixelNames) {
		return fmt.Sprintf("PixelType(%d)", int(p))
	}
	return pixelNames[p]
}

// ParsePixelType accepts GDAL data type names, case-insensitively.
func ParsePixelType(s string) (PixelType, error) {
	s = strings.TrimSpace(s)
	for i, n := range pixelNames {
		if i != int(Unknown) && strings.EqualFold(n, s) {
			return PixelType(i), nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownPixelType, s)
}

func (p PixelType) IsInteger() bool {
	switch p {
	case Byte, UInt16, Int16, UInt32, Int32:
		return true
	}
	return false
}

func (p PixelType) bounds() (lo, hi float64) {
	switch p {
	case Byte:
		return 0, math.MaxUint8
	case UInt16:
		return 0, math.MaxUint16
	case Int16:
		return math.MinInt16, math.MaxInt16
	case UInt32:
		return 0, math.MaxUint32
	case Int32:
		return math.MinInt32, math.MaxInt32
	}
	return math.Inf(-1), math.Inf(1)
}

// Convert returns v as it would be stored in a band of type p.
// The step is lossy: integer types truncate toward zero and saturate at
// their bounds (NaN becomes 0), Float32 rounds to the nearest float32.
// Unknown and Float64 keep v unchanged.
func (p PixelType) Convert(v float64) float64 {
	switch {
	case p == Float32:
		return float64(float32(v))
	case p.IsInteger():
		if math.IsNaN(v) {
			return 0
		}
		lo, hi := p.bounds()
		v = math.Trunc(v)
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return v
}
