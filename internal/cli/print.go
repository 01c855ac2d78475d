package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/porticus-lab/vaultprint"
	"github.com/porticus-lab/vaultprint/internal/app"
)

// printFlags configure the page and the browser.
type printFlags struct {
	paper     string
	landscape bool
	margin    float64
	scale     float64
	chrome    string
	noSandbox bool
	download  bool
	timeout   time.Duration
}

func (f *printFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.paper, "paper", "A4", "paper size ("+strings.Join(vaultprint.PageSizeNames(), ", ")+")")
	fs.BoolVar(&f.landscape, "landscape", false, "print in landscape orientation")
	fs.Float64Var(&f.margin, "margin", 1, "page margin in centimeters")
	fs.Float64Var(&f.scale, "scale", 1, "rendering scale (0.1-2)")
	fs.StringVar(&f.chrome, "chrome", "", "path to the Chrome or Chromium executable")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox (needed as root)")
	fs.BoolVar(&f.download, "download-browser", false, "download Chromium if no browser is found")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "maximum time for one print")
}

func (f *printFlags) pageConfig() (*vaultprint.PageConfig, error) {
	size, err := vaultprint.ParsePageSize(f.paper)
	if err != nil {
		return nil, err
	}
	if f.margin < 0 {
		return nil, fmt.Errorf("cli: margin must not be negative, got %v", f.margin)
	}
	pg := vaultprint.DefaultPageConfig()
	pg.Size = size
	pg.Margin = vaultprint.UniformMargin(f.margin)
	pg.Scale = f.scale
	if f.landscape {
		pg.Orientation = vaultprint.Landscape
	}
	return &pg, nil
}

func (f *printFlags) browser(logger hclog.Logger) app.Option {
	opts := []vaultprint.Option{
		vaultprint.WithTimeout(f.timeout),
		vaultprint.WithLogger(logger.Named("browser")),
	}
	if f.chrome != "" {
		opts = append(opts, vaultprint.WithChromePath(f.chrome))
	}
	if f.noSandbox {
		opts = append(opts, vaultprint.WithNoSandbox())
	}
	if f.download {
		opts = append(opts, vaultprint.WithAutoDownload())
	}
	return app.WithBrowser(app.ChromeBrowser(opts...))
}

// defaultOutput names the PDF after the note or folder.
func defaultOutput(path, ext string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ext
}

func newPrintCmd(o *rootOptions) *cobra.Command {
	var (
		pf     printFlags
		output string
	)
	cmd := &cobra.Command{
		Use:   "print <note|folder>",
		Short: "Print a note or folder to PDF",
		Long: `Print a note, or every note in a folder, to a PDF file.

Folder notes each start on a new page unless combineFolderNotes is set.

Examples:
  # Print one note next to the current directory
  vaultprint print Notes/Shopping.md

  # Print a folder on US Letter paper in landscape
  vaultprint print Projects --paper letter --landscape -o projects.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pg, err := pf.pageConfig()
			if err != nil {
				return err
			}
			path, err := notePath(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = defaultOutput(path, ".pdf")
			}

			a, logger, err := o.openApp(cmd, &pf)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Print(cmd.Context(), path, pg)
			if err != nil {
				return err
			}
			if err := res.WriteToFile(output, 0o644); err != nil {
				return err
			}
			logger.Debug("pdf written", "path", output, "bytes", res.Len())
			o.say(cmd, "Printed %s to %s", a.Vault().Rel(path), output)
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PDF (default: <name>.pdf)")
	return cmd
}
