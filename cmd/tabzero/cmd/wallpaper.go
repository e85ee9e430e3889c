package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/wallpaper"
)

func newWallpaperCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallpaper [url]",
		Short: "Show the wallpaper or switch to a new one",
		Long: `Without arguments, wallpaper prints the wallpaper for the current
theme. With a URL it downloads the image first and only switches
when the download succeeds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if len(args) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), a.settings.Settings().ActiveWallpaper())
				return err
			}

			loader := wallpaper.NewLoader(wallpaper.Params{
				Timeout: a.cfg.Wallpaper.Timeout,
				Logger:  a.log,
			})
			if err := loader.Switch(cmd.Context(), a.settings, args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wallpaper set for %s theme", a.settings.Settings().ThemeMode)
			return nil
		},
	}
}
