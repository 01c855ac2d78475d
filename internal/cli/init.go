package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/vaultprint/internal/styles"
	"github.com/porticus-lab/vaultprint/internal/vault"
)

func newInitCmd(o *rootOptions) *cobra.Command {
	var force, enable bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Install the base stylesheet and a print snippet",
		Long: `Install the plugin base stylesheet into the vault and create a starter
"print" CSS snippet. Existing files are kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, logger, err := o.openApp(cmd, nil)
			if err != nil {
				return err
			}
			v := a.Vault()

			base := filepath.Join(v.PluginDir(), styles.BaseFileName)
			if force || !exists(base) {
				if err := v.WritePluginFile(styles.BaseFileName, styles.DefaultBase); err != nil {
					return err
				}
				o.say(cmd, "Wrote %s", v.Rel(base))
			} else {
				logger.Debug("base stylesheet kept", "path", base)
			}

			snippet := v.SnippetPath(vault.PrintSnippet)
			if force || !v.HasSnippet(vault.PrintSnippet) {
				if err := os.MkdirAll(v.SnippetsDir(), 0o755); err != nil {
					return fmt.Errorf("cli: %w", err)
				}
				if err := os.WriteFile(snippet, []byte(styles.StarterSnippet), 0o644); err != nil {
					return fmt.Errorf("cli: writing snippet: %w", err)
				}
				o.say(cmd, "Wrote %s", v.Rel(snippet))
			} else {
				logger.Debug("snippet kept", "path", snippet)
			}

			if enable {
				if err := v.SetSnippetEnabled(vault.PrintSnippet, true); err != nil {
					return err
				}
				o.say(cmd, "Enabled the %q snippet", vault.PrintSnippet)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	cmd.Flags().BoolVar(&enable, "enable", false, "enable the print snippet")
	return cmd
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
