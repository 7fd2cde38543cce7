package grid

import (
	"sort"

	"github.com/samber/lo"
)

// BandSet selects the bands a tool processes; the others pass through.
type BandSet struct {
	all bool
	idx map[int]struct{}
}

func AllBands() BandSet {
	return BandSet{all: true}
}

// Bands selects exactly the given 1-based indices. With no indices nothing is selected.
func Bands(idx ...int) BandSet {
	return BandSet{idx: lo.SliceToMap(idx, func(i int) (int, struct{}) {
		return i, struct{}{}
	})}
}

func (s BandSet) Contains(b int) bool {
	if s.all {
		return true
	}
	_, ok := s.idx[b]
	return ok
}

func (s BandSet) All() bool {
	return s.all
}

// Outside lists selected indices not in 1..n, ascending.
func (s BandSet) Outside(n int) []int {
	out := lo.Filter(lo.Keys(s.idx), func(b int, _ int) bool {
		return b < 1 || b > n
	})
	sort.Ints(out)
	return out
}
