package remap

import (
	"fmt"

	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/log"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Job is one replace-pixel-value invocation.
type Job struct {
	Input  string
	Output string

	// Parallel lists, one item per rule. Items may hold "+"-joined groups.
	Operators  []string
	Thresholds []string
	Outputs    []string

	Bands grid.BandSet

	// CalcMap optionally names a raster whose values drive the rules.
	CalcMap string
	// CalcBand > 0 fixes the condition to that band of CalcMap, or of Input without CalcMap.
	CalcBand int
}

// Run compiles the rules, remaps Input and writes Output through st.
// The rules are compiled before anything is opened, and Output is written
// only after every band has been processed.
func Run(job Job, st grid.Storage) (meta grid.Meta, err error) {
	rules, err := Compile(job.Operators, job.Thresholds, job.Outputs)
	if err != nil {
		return
	}
	for i, r := range rules {
		log.Info(logTag+"compiled rule", zap.Int("rule", i+1), zap.Stringer("replace", r))
	}
	input, err := st.Open(job.Input)
	if err != nil {
		err = fmt.Errorf("open input %s: %w", job.Input, err)
		return
	}
	var ref grid.Raster
	defer func() {
		err = multierr.Append(err, grid.CloseAll(input, ref))
	}()
	if job.CalcMap != "" {
		log.Info(logTag+"apply operators to map", zap.String("calcMap", job.CalcMap), zap.Int("calcBand", job.CalcBand))
		if ref, err = st.Open(job.CalcMap); err != nil {
			err = fmt.Errorf("open calculation map %s: %w", job.CalcMap, err)
			return
		}
	}
	source, err := ResolveSource(input, ref, job.CalcBand)
	if err != nil {
		return
	}
	bands, err := Pipeline{Rules: rules, Bands: job.Bands, Source: source}.Process(input)
	if err != nil {
		return
	}
	meta = input.Meta()
	if err = st.WriteMultiband(job.Output, bands, meta); err != nil {
		err = fmt.Errorf("write output %s: %w", job.Output, err)
		return
	}
	log.Info(logTag+"output written", zap.String("output", job.Output), zap.Int("bands", len(bands)))
	return
}
