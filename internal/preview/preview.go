package preview

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Overlay class names.
const (
	WindowClass      = "print-preview-window"
	ControlsClass    = "print-preview-controls"
	ContentClass     = "print-preview-content"
	PageClass        = "print-preview-page"
	PageContentClass = "print-preview-page-content"
)

// ErrClosed is returned when printing from a preview that was dismissed.
var ErrClosed = errors.New("preview: closed")

// Options sizes the overlay.
type Options struct {
	Width  string
	Height string
	// Scale is applied to the page area. Zero leaves it unscaled.
	Scale float64
}

// DefaultOptions are used by the print command.
func DefaultOptions() Options {
	return Options{Width: "90%", Height: "90%", Scale: 1}
}

func (o Options) resolved() Options {
	if o.Width == "" {
		o.Width = "80%"
	}
	if o.Height == "" {
		o.Height = "80%"
	}
	return o
}

// Printer sends prepared content to the print pipeline.
type Printer interface {
	Print(ctx context.Context, content *goquery.Selection, css string) error
}

// PrinterFunc adapts a function to [Printer].
type PrinterFunc func(ctx context.Context, content *goquery.Selection, css string) error

// Print calls f.
func (f PrinterFunc) Print(ctx context.Context, content *goquery.Selection, css string) error {
	return f(ctx, content, css)
}

// Preview is an open overlay. It forces the workspace into light mode while
// shown and puts dark mode back on Close.
type Preview struct {
	ws      *Workspace
	printer Printer
	content *goquery.Selection
	css     string
	wasDark bool
	window  *goquery.Selection
}

// Open shows content in an overlay on ws. The content is copied; the caller
// keeps ownership of its selection.
func Open(ws *Workspace, printer Printer, content *goquery.Selection, css string, opts Options) *Preview {
	opts = opts.resolved()
	p := &Preview{
		ws:      ws,
		printer: printer,
		content: content.Clone(),
		css:     css,
		wasDark: ws.Dark(),
	}
	if p.wasDark {
		ws.setDark(false)
	}

	body := ws.body()
	body.AppendHtml(overlayHTML(css, opts))
	p.window = body.ChildrenFiltered("." + WindowClass).Last()
	if p.wasDark {
		p.window.SetAttr("data-restore-dark", "true")
	}
	p.window.Find("." + PageContentClass).AppendSelection(content.Clone())
	if opts.Scale != 0 {
		p.window.Find("."+ContentClass).SetAttr("style",
			"transform: scale("+strconv.FormatFloat(opts.Scale, 'f', -1, 64)+"); transform-origin: top center;")
	}
	return p
}

// IsOpen reports whether the overlay is still attached.
func (p *Preview) IsOpen() bool {
	return p.window != nil
}

// Window returns the overlay element, or an empty selection once closed.
func (p *Preview) Window() *goquery.Selection {
	if p.window == nil {
		return &goquery.Selection{}
	}
	return p.window
}

// Print hands the content and stylesheet to the printer and closes the
// preview, whether or not printing succeeded.
func (p *Preview) Print(ctx context.Context) error {
	if !p.IsOpen() {
		return ErrClosed
	}
	err := p.printer.Print(ctx, p.content, p.css)
	p.Close()
	if err != nil {
		return fmt.Errorf("preview: print: %w", err)
	}
	return nil
}

// Close removes the overlay and restores dark mode if the workspace was in
// it when the preview opened. Closing twice is a no-op.
func (p *Preview) Close() {
	if p.window == nil {
		return
	}
	if p.wasDark {
		p.ws.setDark(true)
	}
	p.window.Remove()
	p.window = nil
}

// HTML serialises the workspace with the overlay, for viewing in a browser.
func (p *Preview) HTML() (string, error) {
	return p.ws.HTML()
}

// Manager keeps at most one preview open on a workspace.
type Manager struct {
	mu      sync.Mutex
	ws      *Workspace
	printer Printer
	current *Preview
}

// NewManager returns a Manager for ws.
func NewManager(ws *Workspace, printer Printer) *Manager {
	return &Manager{ws: ws, printer: printer}
}

// Open closes any open preview, then opens a new one.
func (m *Manager) Open(content *goquery.Selection, css string, opts Options) *Preview {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		m.current.Close()
	}
	m.current = Open(m.ws, m.printer, content, css, opts)
	return m.current
}

// Current returns the open preview, or nil.
func (m *Manager) Current() *Preview {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || !m.current.IsOpen() {
		return nil
	}
	return m.current
}

// Close dismisses the open preview, if any.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		m.current.Close()
		m.current = nil
	}
}

func overlayHTML(css string, opts Options) string {
	return `<div class="` + WindowClass + `">` +
		"<style>\n" + escapeStyle(css) + "\n" + containerStyles(opts) + "</style>" +
		`<div class="` + ControlsClass + `">` +
		`<button type="button" data-action="print">Print</button>` +
		`<button type="button" data-action="close">Close</button>` +
		`</div>` +
		`<div class="` + ContentClass + `"><div class="` + PageClass + `"><div class="` + PageContentClass + `"></div></div></div>` +
		controlScript +
		`</div>`
}

func containerStyles(o Options) string {
	return fmt.Sprintf(`.print-preview-window {
  position: fixed;
  top: 50%%;
  left: 50%%;
  transform: translate(-50%%, -50%%);
  background: white;
  padding: 20px;
  border: 1px solid #ccc;
  box-shadow: 0 0 10px rgba(0,0,0,0.2);
  z-index: 9999;
  overflow: auto;
  width: %s;
  height: %s;
}
.print-preview-controls {
  position: sticky;
  top: 0;
  width: 100%%;
  padding: 10px;
  border-bottom: 1px solid #90520c;
  display: flex;
  gap: 10px;
  justify-content: flex-end;
  z-index: 1;
}
.print-preview-content {
  margin-top: 20px;
  background-color: #f0f0f0;
  padding: 10px;
  display: flex;
  flex-direction: column;
  align-items: center;
}
.print-preview-page {
  background-color: white;
  margin: 20px;
  box-shadow: 0 0 10px rgba(0,0,0,0.3);
  position: relative;
  box-sizing: border-box;
  overflow: visible;
}
.print-preview-page-content {
  padding: 20px;
  box-sizing: border-box;
  width: 100%%;
  overflow: visible;
}
@media print {
  body > :not(.print-preview-window), .print-preview-controls { display: none; }
  .print-preview-window, .print-preview-content, .print-preview-page {
    position: static; transform: none; box-shadow: none; border: none;
    margin: 0; padding: 0; width: auto; height: auto; overflow: visible; background: none;
  }
}
`, o.Width, o.Height)
}

// Buttons work when the serialised page is opened in a browser.
const controlScript = `<script>
document.querySelectorAll(".print-preview-controls button").forEach(function (b) {
  b.addEventListener("click", function () {
    var w = b.closest(".print-preview-window");
    if (b.dataset.action === "print") { window.print(); }
    w.remove();
    if (w.dataset.restoreDark === "true") {
      document.body.classList.replace("theme-light", "theme-dark");
    }
  });
});
</script>`
