package themecolor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Mode is the theme class applied to a document body.
type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "theme-dark"
	}
	return "theme-light"
}

// Document is a live styled document that can evaluate color tokens.
type Document interface {
	// Mode reports the current theme class.
	Mode(ctx context.Context) (Mode, error)
	// SetMode replaces the theme class.
	SetMode(ctx context.Context, m Mode) error
	// ComputedColor assigns token to a throwaway element's color and returns
	// the computed value, typically "rgb(r, g, b)".
	ComputedColor(ctx context.Context, token string) (string, error)
}

// AcquireLight switches doc to light mode when it is currently dark and the
// caller is resolving for a dark session. The returned release restores the
// mode that was in place before the call; it is safe to call more than once
// and ignores cancellation of ctx.
func AcquireLight(ctx context.Context, doc Document, dark bool) (release func() error, err error) {
	noop := func() error { return nil }
	if !dark {
		return noop, nil
	}
	current, err := doc.Mode(ctx)
	if err != nil {
		return noop, fmt.Errorf("themecolor: reading theme mode: %w", err)
	}
	if current != Dark {
		return noop, nil
	}

	var (
		once       sync.Once
		releaseErr error
	)
	release = func() error {
		once.Do(func() {
			if err := doc.SetMode(context.WithoutCancel(ctx), Dark); err != nil {
				releaseErr = fmt.Errorf("themecolor: restoring %s: %w", Dark, err)
			}
		})
		return releaseErr
	}
	if err := doc.SetMode(ctx, Light); err != nil {
		// The switch may have partially applied; put the original back.
		return noop, errors.Join(fmt.Errorf("themecolor: switching to %s: %w", Light, err), release())
	}
	return release, nil
}

// WithLightMode runs fn with doc held in light mode (see [AcquireLight]).
// The original mode is restored on every exit path, including a panic in fn.
func WithLightMode(ctx context.Context, doc Document, dark bool, fn func(ctx context.Context) error) (err error) {
	release, err := AcquireLight(ctx, doc, dark)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := release(); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()
	return fn(ctx)
}

// Resolver turns raw color tokens into hex values. Calls are serialised
// because resolution temporarily mutates the document's theme class.
type Resolver struct {
	doc Document
	mu  sync.Mutex
}

// NewResolver returns a Resolver probing doc.
func NewResolver(doc Document) *Resolver {
	return &Resolver{doc: doc}
}

// Resolve returns token as a hex color. Hex literals are returned as is and
// rgb()/rgba() values are converted directly; variables and keywords are
// evaluated by the document, in light mode when dark is set.
func (r *Resolver) Resolve(ctx context.Context, token string, dark bool) (string, error) {
	token = strings.TrimSpace(token)
	switch {
	case IsHex(token):
		return token, nil
	case IsRGB(token):
		return RGBToHex(token), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var computed string
	err := WithLightMode(ctx, r.doc, dark, func(ctx context.Context) error {
		var err error
		computed, err = r.doc.ComputedColor(ctx, token)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("themecolor: resolving %q: %w", token, err)
	}
	return RGBToHex(computed), nil
}

// ResolveAll resolves every entry of colors. Levels that fail to resolve
// are left out of the result and reported together in the returned error.
func (r *Resolver) ResolveAll(ctx context.Context, colors HeaderColorMap, dark bool) (map[int]string, error) {
	levels := make([]int, 0, len(colors))
	for level := range colors {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	out := make(map[int]string, len(colors))
	var errs []error
	for _, level := range levels {
		hex, err := r.Resolve(ctx, colors[level], dark)
		if err != nil {
			errs = append(errs, fmt.Errorf("h%d: %w", level, err))
			continue
		}
		out[level] = hex
	}
	return out, errors.Join(errs...)
}
