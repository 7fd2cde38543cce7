package remap

import (
	"fmt"

	"github.com/wgdzlh/rastool/grid"
)

// ConditionSource decides which array the rules of band b are evaluated against.
// It is resolved once per run and implemented only by OwnBand, FixedBand and PerBand.
type ConditionSource interface {
	condition(b int, own grid.Band) (grid.Band, error)
	String() string
}

// OwnBand evaluates rules against the target band's own data as read,
// before any rule has replaced a value.
type OwnBand struct{}

func (OwnBand) condition(_ int, own grid.Band) (grid.Band, error) {
	return own, nil
}

func (OwnBand) String() string {
	return "own band"
}

// FixedBand evaluates every target band's rules against one band read up front.
type FixedBand struct {
	Index int
	Band  grid.Band
}

func (f FixedBand) condition(b int, own grid.Band) (grid.Band, error) {
	if err := grid.CheckShape(f.Index, f.Band, own); err != nil {
		return grid.Band{}, fmt.Errorf("reference band for band %d: %w", b, err)
	}
	return f.Band, nil
}

func (f FixedBand) String() string {
	return fmt.Sprintf("fixed band %d", f.Index)
}

// PerBand evaluates band b against band b of a reference raster.
type PerBand struct {
	Ref grid.Raster
}

func (p PerBand) condition(b int, own grid.Band) (cond grid.Band, err error) {
	if n := p.Ref.BandCount(); b > n {
		err = &BandCountMismatchError{Band: b, Have: n}
		return
	}
	if cond, err = p.Ref.ReadBand(b); err != nil {
		err = fmt.Errorf("read reference band %d: %w", b, err)
		return
	}
	if err = grid.CheckShape(b, cond, own); err != nil {
		err = fmt.Errorf("reference band %d: %w", b, err)
	}
	return
}

func (PerBand) String() string {
	return "reference raster, band by band"
}

// ResolveSource picks the condition source once per run:
//   - ref and calcBand: band calcBand of ref for every band
//   - ref only: the matching band of ref
//   - calcBand only: band calcBand of the input raster
//   - neither: each band's own data
func ResolveSource(input, ref grid.Raster, calcBand int) (ConditionSource, error) {
	from := ref
	if from == nil {
		if calcBand <= 0 {
			return OwnBand{}, nil
		}
		from = input
	} else if calcBand <= 0 {
		return PerBand{Ref: ref}, nil
	}
	if n := from.BandCount(); calcBand > n {
		return nil, fmt.Errorf("calculation band %d of %d: %w", calcBand, n, grid.ErrBandOutOfRange)
	}
	b, err := from.ReadBand(calcBand)
	if err != nil {
		return nil, fmt.Errorf("read calculation band %d: %w", calcBand, err)
	}
	return FixedBand{Index: calcBand, Band: b}, nil
}
