package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/vaultprint/internal/settings"
)

func newThemeColorsCmd(o *rootOptions) *cobra.Command {
	var (
		pf     printFlags
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "theme-colors",
		Short: "Take the heading colors from the active theme",
		Long: `Read the heading colors of the active theme and store them in the
plugin settings. Colors are read in light mode even when the vault uses the
dark theme. Levels the theme does not color are set to black.

Colors given as variables or color names are evaluated by a headless
browser, so the browser flags of "print" apply here too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := o.openApp(cmd, &pf)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if dryRun {
				colors, err := a.ThemeColors(cmd.Context())
				for level := 1; level <= settings.Levels; level++ {
					c, ok := colors[level]
					if !ok {
						c = "-"
					}
					fmt.Fprintf(out, "h%d\t%s\n", level, c)
				}
				return err
			}

			s, err := a.InitializeThemeColors(cmd.Context())
			if !s.HasInitializedColors {
				return err
			}
			for level := 1; level <= settings.Levels; level++ {
				fmt.Fprintf(out, "h%d\t%s\n", level, s.HeadingColor(level))
			}
			if err != nil {
				o.say(cmd, "Some colors could not be resolved: %v", err)
			}
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the colors without saving them")
	return cmd
}
