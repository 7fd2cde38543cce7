// Package remap rewrites raster pixel values under ordered conditional rules.
//
// Rules are compiled from parallel operator and threshold lists (">" with
// "10", ">+<" with "5+10") into predicates and applied band by band. The
// condition a rule tests may come from the band itself, one fixed reference
// band, or the matching band of a reference raster.
//
// Equality operators compare floats exactly, with no tolerance.
package remap

import (
	"fmt"

	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/log"

	"go.uber.org/zap"
)

const logTag = "Remap:"

// Pipeline applies one rule set to the selected bands of a raster.
type Pipeline struct {
	Rules  RuleSet
	Bands  grid.BandSet
	Source ConditionSource
}

// Process returns one output band per input band, in band order.
// Unselected bands are returned exactly as read.
func (p Pipeline) Process(src grid.Raster) (out []grid.Band, err error) {
	var (
		n    = src.BandCount()
		pt   = src.Meta().PixelType
		band grid.Band
		cond grid.Band
		srcs = p.Source
	)
	if srcs == nil {
		srcs = OwnBand{}
	}
	if skipped := p.Bands.Outside(n); len(skipped) > 0 {
		log.Warn(logTag+"ignore bands not in raster", zap.Ints("bands", skipped), zap.Int("bandCount", n))
	}
	log.Info(logTag+"start remap", zap.Int("bands", n), zap.Int("rules", len(p.Rules)), zap.Stringer("source", srcs), zap.Stringer("pixelType", pt))
	out = make([]grid.Band, n)
	for b := 1; b <= n; b++ {
		log.Info(logTag+"working on band", zap.Int("band", b), zap.Int("of", n))
		if band, err = src.ReadBand(b); err != nil {
			err = fmt.Errorf("read band %d: %w", b, err)
			return nil, err
		}
		if !p.Bands.Contains(b) {
			out[b-1] = band
			continue
		}
		if cond, err = srcs.condition(b, band); err != nil {
			return nil, err
		}
		if out[b-1], err = p.Rules.Apply(cond, band, pt); err != nil {
			return nil, err
		}
	}
	return
}
