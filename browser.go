package vaultprint

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/hashicorp/go-hclog"
)

// resolveBrowser downloads a compatible Chromium binary if one is not
// already cached and returns the path to the executable. The binary lives
// under ~/.cache/rod/browser (Unix) or %APPDATA%\rod\browser (Windows).
func resolveBrowser() (string, error) {
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("vaultprint: downloading browser: %w", err)
	}
	return path, nil
}

// allocatorOptions returns the exec allocator flags for cfg, downloading a
// browser first when asked to.
func allocatorOptions(cfg *printerConfig) ([]chromedp.ExecAllocatorOption, error) {
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", "new"),
		// Theme stylesheets reference fonts and images relative to the
		// vault; file:// pages need to reach them.
		chromedp.Flag("allow-file-access-from-files", true),
	)

	path := cfg.chromePath
	if path == "" && cfg.autoDownload {
		cfg.logger.Info("locating browser, downloading if needed")
		p, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if path != "" {
		cfg.logger.Debug("using browser", "path", path)
		opts = append(opts, chromedp.ExecPath(path))
	}
	if cfg.noSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	return opts, nil
}

// startBrowser launches the browser so errors surface when the printer is
// created rather than on first use.
func startBrowser(opts []chromedp.ExecAllocatorOption, logger hclog.Logger) (context.Context, context.CancelFunc, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	cancel := func() {
		browserCancel()
		allocCancel()
	}
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("vaultprint: starting browser: %w", err)
	}
	return browserCtx, cancel, nil
}
