package cli

import (
	"fmt"

	"github.com/wgdzlh/rastool"
	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/log"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func newClipCommand(app *App) *cobra.Command {
	var (
		opt    rastool.ClipOptions
		nodata float64
		desc   string
		noMeta bool
	)
	cmd := &cobra.Command{
		Use:   "clip <source> <clip> <output>",
		Short: "Clip a raster by a shapefile, GeoJSON or mask raster",
		Long: `Clip a raster to a polygon cutline and crop it to the cutline extent.

A .shp, .geojson or .json clip file is used as the cutline. Any other file is
read as a raster: its non-zero pixels are polygonized into <outdir>/<clipname>.shp
first.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opt.PolyBand < 1 {
				return fmt.Errorf("--poly-band must be at least 1, got %d", opt.PolyBand)
			}
			opt.Source, opt.Clip, opt.Output = args[0], args[1], args[2]
			if cmd.Flags().Changed("nodata") {
				v := nodata
				opt.NoData = &v
			}
			ready(cmd)
			cutline, err := app.Clipper.ClipRaster(opt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cutline:", cutline)
			fmt.Fprintln(cmd.OutOrStdout(), "written:", opt.Output)
			if !noMeta {
				meta, err := outputMeta(app.Storage, opt.Output)
				if err != nil {
					log.Warn(logTag+"extent of clipped raster unknown", zap.String("output", opt.Output), zap.Error(err))
				}
				app.writeMeta(cmd, args, opt.Output, desc, meta)
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&opt.PolyBand, "poly-band", rastool.DEFAULT_POLY_BAND, "band of a clip raster used to build the mask")
	fl.Float64Var(&nodata, "nodata", 0, "nodata value of the output (default: not set)")
	fl.StringVar(&opt.Field, "field", rastool.DEFAULT_MASK_FIELD, "attribute field of the cutline used by --attr")
	fl.StringArrayVar(&opt.Attrs, "attr", nil, "keep only cutline features whose --field equals this value (repeatable)")
	fl.StringVar(&opt.Format, "format", app.Config.ClipFormat, "GDAL output format")
	app.addMetaFlags(cmd, &desc, &noMeta)
	return cmd
}

func outputMeta(st grid.Storage, path string) (meta *grid.Meta, err error) {
	r, err := st.Open(path)
	if err != nil {
		return
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()
	m := r.Meta()
	meta = &m
	return
}
