package cli

import (
	"fmt"

	"github.com/wgdzlh/rastool/diffstack"
	"github.com/wgdzlh/rastool/grid"

	"github.com/spf13/cobra"
)

func newDifferenceCommand(app *App) *cobra.Command {
	var (
		pixelType string
		desc      string
		noMeta    bool
	)
	cmd := &cobra.Command{
		Use:   "difference <input> <output>",
		Short: "Write the difference of each band from the previous one",
		Long: `Write a raster with the same band count as the input where band 1 is zero
and band b is input band b minus input band b-1.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt := grid.Unknown
			if pixelType != "" {
				var err error
				if pt, err = grid.ParsePixelType(pixelType); err != nil {
					return err
				}
			}
			ready(cmd)
			meta, err := diffstack.Run(args[0], args[1], pt, app.Storage)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "written:", args[1])
			if !noMeta {
				app.writeMeta(cmd, args, args[1], desc, &meta)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pixelType, "type", "", "output pixel type, e.g. Int16 or Float32 (default: input type)")
	app.addMetaFlags(cmd, &desc, &noMeta)
	return cmd
}
