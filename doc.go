// Package vaultprint prints Obsidian vault notes through headless Chrome
// with print styles generated from the plugin settings.
//
// The root package holds the browser side of the pipeline. A [Printer]
// owns one browser process and prints HTML to PDF:
//
//	p, err := vaultprint.NewPrinter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	res, err := p.PrintHTML(ctx, html, &vaultprint.PageConfig{Size: vaultprint.Letter})
//	err = res.WriteToFile("notes.pdf", 0o644)
//
// The same browser evaluates theme colors. [Printer.OpenThemeDocument] loads
// a theme stylesheet into a tab that the themecolor package can query for
// computed heading colors.
//
// Chrome or Chromium must be in PATH, set with [WithChromePath], or fetched
// with [WithAutoDownload]. The vaultprint command in cmd/vaultprint wires
// this package to a vault on disk.
package vaultprint
