package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/porticus-lab/vaultprint"
	"github.com/porticus-lab/vaultprint/internal/preview"
	"github.com/porticus-lab/vaultprint/internal/render"
)

type previewOptions struct {
	pf       printFlags
	output   string
	pdf      string
	terminal bool
	width    string
	height   string
	scale    float64
}

func newPreviewCmd(o *rootOptions) *cobra.Command {
	po := &previewOptions{}
	cmd := &cobra.Command{
		Use:   "preview <note|folder>",
		Short: "Preview a note before printing",
		Long: `Build the print preview for a note or folder.

By default the preview page is written as HTML; open it in a browser and use
its Print button. With --terminal the notes are rendered to the terminal
instead. With --print the preview is printed straight away, the way the
Print button does it.

Examples:
  vaultprint preview Notes/Shopping.md -o preview.html
  vaultprint preview Projects --terminal
  vaultprint preview Notes/Shopping.md --print shopping.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if po.terminal {
				return runTerminalPreview(cmd, o, args[0])
			}
			return runPreview(cmd, o, po, args[0])
		},
	}
	po.pf.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&po.output, "output", "o", "", "write the preview page here (default: <name>.preview.html)")
	f.StringVar(&po.pdf, "print", "", "print from the preview to this PDF")
	f.BoolVar(&po.terminal, "terminal", false, "render the notes in the terminal")
	f.StringVar(&po.width, "width", "90%", "preview window width")
	f.StringVar(&po.height, "height", "90%", "preview window height")
	f.Float64Var(&po.scale, "zoom", 1, "preview zoom")
	return cmd
}

func runPreview(cmd *cobra.Command, o *rootOptions, po *previewOptions, arg string) error {
	pg, err := po.pf.pageConfig()
	if err != nil {
		return err
	}
	path, err := notePath(arg)
	if err != nil {
		return err
	}
	a, logger, err := o.openApp(cmd, &po.pf)
	if err != nil {
		return err
	}
	defer a.Close()

	deliver := func(res *vaultprint.Result) error {
		if err := res.WriteToFile(po.pdf, 0o644); err != nil {
			return err
		}
		o.say(cmd, "Printed %s to %s", a.Vault().Rel(path), po.pdf)
		return nil
	}
	opts := preview.Options{Width: po.width, Height: po.height, Scale: po.scale}
	p, err := a.Preview(cmd.Context(), path, opts, pg, deliver)
	if err != nil {
		return err
	}

	if po.pdf != "" {
		return p.Print(cmd.Context())
	}

	page, err := p.HTML()
	if err != nil {
		return err
	}
	out := po.output
	if out == "" {
		out = defaultOutput(path, ".preview.html")
	}
	if out == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), page)
		return err
	}
	if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
		return fmt.Errorf("cli: writing preview: %w", err)
	}
	logger.Debug("preview written", "path", out)
	o.say(cmd, "Preview written to %s", out)
	return nil
}

func runTerminalPreview(cmd *cobra.Command, o *rootOptions, arg string) error {
	path, err := notePath(arg)
	if err != nil {
		return err
	}
	a, _, err := o.openApp(cmd, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.Store().Load()
	if err != nil {
		return err
	}
	notes, err := a.Vault().CollectNotes(path)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		return fmt.Errorf("cli: no notes found in %s", a.Vault().Rel(path))
	}

	width := 80
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}
	out, err := render.Terminal(notes, width, s.PrintTitle)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
