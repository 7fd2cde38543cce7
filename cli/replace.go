package cli

import (
	"fmt"

	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/remap"
	"github.com/wgdzlh/rastool/utils"

	"github.com/spf13/cobra"
)

type replaceFlags struct {
	inBands  []int
	calcMap  string
	calcBand int
	desc     string
	noMeta   bool
}

func newReplaceCommand(app *App) *cobra.Command {
	var f replaceFlags
	cmd := &cobra.Command{
		Use:   "replace <input> <output> <operators> <thresholds> <values>",
		Short: "Replace pixel values that satisfy comparison rules",
		Long: `Replace pixel values band by band under an ordered list of rules.

Operators, thresholds and values are comma-separated lists with one item per rule.
Operators are one of > < <= >= == != (aliases =< => = =!). Join several
comparisons of one rule with "+", e.g. ">=+<" with "5+10" for 5 <= v < 10.
Thresholds go only in <thresholds>: an operator such as ">10" is rejected.
Rules apply in order, so a later rule overwrites an earlier one.`,
		Example: `  rastool replace in.tif out.tif ">,<=" "10,1" "999,0" --inband 1
  rastool replace in.tif out.tif ">=+<" "5+10" "1" --calcmap ndvi.tif --calcband 1`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := f.job(cmd, args)
			if err != nil {
				return err
			}
			ready(cmd)
			meta, err := remap.Run(job, app.Storage)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "written:", job.Output)
			if !f.noMeta {
				app.writeMeta(cmd, args, job.Output, f.desc, &meta)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntSliceVar(&f.inBands, "inband", nil, "band to process, 1-based (repeatable; default all bands)")
	fl.StringVar(&f.calcMap, "calcmap", "", "raster whose values drive the rules instead of the input")
	fl.IntVar(&f.calcBand, "calcband", 0, "fixed band of the calculation raster (or of the input without --calcmap) used for every band")
	app.addMetaFlags(cmd, &f.desc, &f.noMeta)
	return cmd
}

func (f *replaceFlags) job(cmd *cobra.Command, args []string) (job remap.Job, err error) {
	if f.calcBand < 0 {
		err = fmt.Errorf("--calcband must be positive, got %d", f.calcBand)
		return
	}
	bands := grid.AllBands()
	if cmd.Flags().Changed("inband") {
		bands = grid.Bands(f.inBands...)
	}
	job = remap.Job{
		Input:      args[0],
		Output:     args[1],
		Operators:  utils.SplitList(args[2], remap.RuleSep),
		Thresholds: utils.SplitList(args[3], remap.RuleSep),
		Outputs:    utils.SplitList(args[4], remap.RuleSep),
		Bands:      bands,
		CalcMap:    f.calcMap,
		CalcBand:   f.calcBand,
	}
	return
}
