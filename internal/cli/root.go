// Package cli provides the command-line interface for vaultprint.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/porticus-lab/vaultprint/internal/app"
	"github.com/porticus-lab/vaultprint/internal/logging"
	"github.com/porticus-lab/vaultprint/internal/render"
	"github.com/porticus-lab/vaultprint/internal/vault"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	vaultDir  string
	codeStyle string
	verbose   bool
	quiet     bool
}

// NewRootCmd builds the vaultprint command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "vaultprint",
		Short: "Print Obsidian notes with theme-aware print styles",
		Long: `vaultprint prints notes and folders from an Obsidian vault to PDF.

Headings are styled from the plugin settings, whose colors can be taken from
the active theme, and a "print" CSS snippet in the vault adds print-only
styles. Printing uses a headless Chrome or Chromium.`,
		Version:      Version,
		SilenceUsage: true,
	}
	cmd.SetVersionTemplate(versionString() + "\n")

	cmd.PersistentFlags().StringVar(&o.vaultDir, "vault", "", "vault directory (default: search upwards from the current directory)")
	cmd.PersistentFlags().StringVar(&o.codeStyle, "code-style", render.DefaultCodeStyle, "chroma style for code blocks")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&o.quiet, "quiet", "q", false, "suppress non-error output")

	cmd.AddCommand(
		newPrintCmd(o),
		newPreviewCmd(o),
		newStylesCmd(o),
		newThemeColorsCmd(o),
		newSettingsCmd(o),
		newInitCmd(o),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) hclog.Logger {
	return logging.New(cmd.ErrOrStderr(), o.verbose, o.quiet)
}

func (o *rootOptions) openVault() (*vault.Vault, error) {
	if o.vaultDir != "" {
		return vault.Open(o.vaultDir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	return vault.Find(wd)
}

// openApp opens the vault and wires the app. pf may be nil for commands
// that never start a browser. The caller closes the app.
func (o *rootOptions) openApp(cmd *cobra.Command, pf *printFlags) (*app.App, hclog.Logger, error) {
	logger := o.logger(cmd)
	if !slices.Contains(render.CodeStyleNames(), o.codeStyle) {
		return nil, nil, fmt.Errorf("cli: unknown code style %q (known: %s)",
			o.codeStyle, strings.Join(render.CodeStyleNames(), ", "))
	}
	v, err := o.openVault()
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("vault opened", "root", v.Root())

	notifier := logging.LogNotifier{Out: cmd.ErrOrStderr()}
	if o.quiet {
		notifier = logging.LogNotifier{Logger: logger}
	}
	opts := []app.Option{
		app.WithLogger(logger),
		app.WithNotifier(notifier),
		app.WithRenderer(render.New(render.WithCodeStyle(o.codeStyle))),
	}
	if pf != nil {
		opts = append(opts, pf.browser(logger))
	}
	return app.New(v, opts...), logger, nil
}

// notePath resolves a note argument against the working directory.
func notePath(arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("cli: %w", err)
	}
	return abs, nil
}

func (o *rootOptions) say(cmd *cobra.Command, format string, args ...any) {
	if o.quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
