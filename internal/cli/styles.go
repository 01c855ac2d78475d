package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newStylesCmd(o *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Print the generated print stylesheet",
		Long: `Print the stylesheet used for printing: heading and font rules from the
settings, then the plugin base stylesheet and the enabled print snippet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, _, err := o.openApp(cmd, nil)
			if err != nil {
				return err
			}
			css, err := a.Styles()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), css)
				return err
			}
			if err := os.WriteFile(output, []byte(css), 0o644); err != nil {
				return fmt.Errorf("cli: writing stylesheet: %w", err)
			}
			o.say(cmd, "Stylesheet written to %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the stylesheet here instead of stdout")
	return cmd
}
