package remap

import (
	"strconv"

	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/log"

	"go.uber.org/zap"
)

// Rule replaces pixels whose condition value matches When with Value.
type Rule struct {
	When  Predicate
	Value float64
}

func (r Rule) String() string {
	return r.When.String() + " -> " + strconv.FormatFloat(r.Value, 'g', -1, 64)
}

// RuleSet is applied in order; where masks overlap the later rule wins.
type RuleSet []Rule

// Apply evaluates every rule against cond and writes matches into a copy of data.
// cond is never modified, so all rules see the same condition values.
// Output values go through pt.Convert before they are stored.
func (rs RuleSet) Apply(cond, data grid.Band, pt grid.PixelType) (out grid.Band, err error) {
	if err = grid.CheckShape(0, cond, data); err != nil {
		return
	}
	out = data.Clone()
	for i, r := range rs {
		log.Info(logTag+"apply rule", zap.Int("rule", i+1), zap.Stringer("predicate", r.When), zap.Float64("value", r.Value))
		v := pt.Convert(r.Value)
		for j, hit := range r.When.Mask(cond.Data) {
			if hit {
				out.Data[j] = v
			}
		}
	}
	return
}
