// Package diffstack builds inter-band difference stacks: band 1 of the result
// is zero and band b holds band b minus band b-1 of the input.
package diffstack

import (
	"fmt"

	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/log"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const logTag = "DiffStack:"

// Compute returns the difference stack of src converted to pt.
// pt == grid.Unknown keeps the input's pixel type.
func Compute(src grid.Raster, pt grid.PixelType) (out []grid.Band, err error) {
	n := src.BandCount()
	if n == 0 {
		err = grid.ErrNoBands
		return
	}
	if pt == grid.Unknown {
		pt = src.Meta().PixelType
	}
	log.Info(logTag+"start difference", zap.Int("bands", n), zap.Stringer("pixelType", pt))
	out = make([]grid.Band, n)
	var last, cur grid.Band
	for b := 1; b <= n; b++ {
		log.Info(logTag+"working on band", zap.Int("band", b), zap.Int("of", n))
		if cur, err = src.ReadBand(b); err != nil {
			return nil, fmt.Errorf("read band %d: %w", b, err)
		}
		if b == 1 {
			out[0] = grid.NewBand(cur.Rows, cur.Cols)
			last = cur
			continue
		}
		if err = grid.CheckShape(b, cur, last); err != nil {
			return nil, err
		}
		diff := grid.NewBand(cur.Rows, cur.Cols)
		for i, v := range cur.Data {
			diff.Data[i] = pt.Convert(v - last.Data[i])
		}
		out[b-1] = diff
		last = cur
	}
	return
}

// Run reads input, writes its difference stack to output and returns the output meta.
func Run(input, output string, pt grid.PixelType, st grid.Storage) (meta grid.Meta, err error) {
	src, err := st.Open(input)
	if err != nil {
		err = fmt.Errorf("open input %s: %w", input, err)
		return
	}
	defer func() {
		err = multierr.Append(err, src.Close())
	}()
	bands, err := Compute(src, pt)
	if err != nil {
		return
	}
	meta = src.Meta()
	if pt != grid.Unknown {
		meta.PixelType = pt
	}
	if err = st.WriteMultiband(output, bands, meta); err != nil {
		err = fmt.Errorf("write output %s: %w", output, err)
		return
	}
	log.Info(logTag+"output written", zap.String("output", output), zap.Int("bands", len(bands)))
	return
}
