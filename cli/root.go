// Package cli wires the raster tools to cobra commands.
package cli

import (
	"fmt"

	"github.com/wgdzlh/rastool"
	"github.com/wgdzlh/rastool/config"
	"github.com/wgdzlh/rastool/grid"
	"github.com/wgdzlh/rastool/log"
	"github.com/wgdzlh/rastool/provenance"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const logTag = "Cli:"

// Clipper clips a raster by a polygon or mask file.
type Clipper interface {
	ClipRaster(opt rastool.ClipOptions) (cutline string, err error)
}

// App carries what the commands share. Nil Storage/Clipper are replaced by a
// GdalToolbox built from Config before a command runs.
type App struct {
	Config  config.Config
	Storage grid.Storage
	Clipper Clipper

	// Argv is recorded in the meta file; defaults to the command's own args.
	Argv []string
}

// Execute loads config from the environment and runs the root command with args.
func Execute(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	root := NewRootCommand(&App{Config: cfg, Argv: append([]string{"rastool"}, args...)})
	root.SetArgs(args)
	return root.Execute()
}

func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "rastool",
		Short:         "Batch raster tools: conditional pixel replacement, band difference and clipping",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Init(app.Config.LogLevel, app.Config.LogJSON)
			if app.Storage == nil || app.Clipper == nil {
				g := rastool.NewGdalToolbox(app.Config.TmpDir).WithCreateOptions(app.Config.CreateOptions...)
				if app.Storage == nil {
					app.Storage = g
				}
				if app.Clipper == nil {
					app.Clipper = g
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// stderr不支持fsync，Sync报错可忽略
			_ = log.Sync()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&app.Config.LogLevel, "log-level", app.Config.LogLevel, "log level (debug, info, warn, error)")
	pf.BoolVar(&app.Config.LogJSON, "log-json", app.Config.LogJSON, "log as JSON")
	pf.StringVar(&app.Config.TmpDir, "tmp-dir", app.Config.TmpDir, "directory for temporary files (default: output directory)")
	pf.StringSliceVar(&app.Config.CreateOptions, "co", app.Config.CreateOptions, "GDAL creation option for written rasters, e.g. COMPRESS=LZW (repeatable)")

	root.AddCommand(newReplaceCommand(app), newDifferenceCommand(app), newClipCommand(app))
	return root
}

// 参数校验通过后不再打印用法
func ready(cmd *cobra.Command) {
	cmd.SilenceUsage = true
}

func (app *App) addMetaFlags(cmd *cobra.Command, desc *string, noMeta *bool) {
	cmd.Flags().StringVar(desc, "meta", "", "free-text note written to the meta file")
	cmd.Flags().BoolVar(noMeta, "no-meta", !app.Config.WriteMeta, "do not write the <output>_meta.txt file")
}

func (app *App) writeMeta(cmd *cobra.Command, args []string, output, desc string, meta *grid.Meta) {
	argv := app.Argv
	if len(argv) == 0 {
		argv = append([]string{cmd.CommandPath()}, args...)
	}
	rec := provenance.Record{Tool: cmd.Name(), Args: argv, Output: output, Description: desc}
	if meta != nil {
		rec = rec.ExtentOf(*meta)
	}
	path, err := provenance.Write(rec)
	if err != nil {
		log.Warn(logTag+"meta file not written", zap.String("output", output), zap.Error(err))
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "meta:", path)
}
