// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"toolbelt-cli/internal/crop"

	"github.com/spf13/cobra"
)

// newCropCommand creates the `toolbelt crop` command.
func newCropCommand(app *App) *cobra.Command {
	var inPlace bool

	cmd := &cobra.Command{
		Use:   "crop [--in-place] INPUT [OUTPUT] EXPRESSION",
		Short: "Crop an image with ImageMagick",
		Long: `Crop INPUT and write the result to OUTPUT (default <name>-cropped<ext>).

EXPRESSION takes one of three shapes:

  WxH+X+Y       geometry: size and top-left offset
  X1,Y1-X2,Y2   corners: top-left inclusive, bottom-right exclusive
  L:T:R:B       margins to remove from each edge`,
		Example: `  toolbelt crop photo.jpg 800x600+10+20
  toolbelt crop photo.jpg out.jpg 10,10-810,610
  toolbelt crop --in-place scan.png 5:5:5:5`,
		Args: usageArgs(cobra.RangeArgs(2, 3)),
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			o := crop.Options{
				Input:      args[0],
				InPlace:    inPlace,
				Expression: args[len(args)-1],
			}
			if len(args) == 3 {
				o.Output = args[1]
			}
			return crop.Run(cmd.Context(), app.query, app.runner, o)
		}),
	}

	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "overwrite INPUT")
	return cmd
}
