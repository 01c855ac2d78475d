package vaultprint

import (
	"fmt"
	"sort"
	"strings"
)

// PageSize is a sheet of paper in centimeters.
type PageSize struct {
	Width  float64
	Height float64
}

// Standard paper sizes.
var (
	A3      = PageSize{Width: 29.7, Height: 42.0}
	A4      = PageSize{Width: 21.0, Height: 29.7}
	A5      = PageSize{Width: 14.8, Height: 21.0}
	Letter  = PageSize{Width: 21.59, Height: 27.94}
	Legal   = PageSize{Width: 21.59, Height: 35.56}
	Tabloid = PageSize{Width: 27.94, Height: 43.18}
)

var pageSizes = map[string]PageSize{
	"a3":      A3,
	"a4":      A4,
	"a5":      A5,
	"letter":  Letter,
	"legal":   Legal,
	"tabloid": Tabloid,
}

// PageSizeNames lists the names accepted by [ParsePageSize].
func PageSizeNames() []string {
	names := make([]string, 0, len(pageSizes))
	for n := range pageSizes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParsePageSize looks up a paper size by case-insensitive name.
func ParsePageSize(name string) (PageSize, error) {
	s, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PageSize{}, fmt.Errorf("vaultprint: unknown paper size %q (want one of %s)",
			name, strings.Join(PageSizeNames(), ", "))
	}
	return s, nil
}

// Orientation is portrait or landscape.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

// Margin holds page margins in centimeters.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(cm float64) Margin {
	return Margin{Top: cm, Right: cm, Bottom: cm, Left: cm}
}

// PageConfig controls the printed sheets. Zero fields take the values from
// [DefaultPageConfig].
type PageConfig struct {
	Size        PageSize
	Orientation Orientation
	// Margin in centimeters.
	Margin Margin
	// Scale between 0.1 and 2.0.
	Scale float64
	// PrintBackground keeps background colors, which heading color swatches
	// and highlighted code rely on.
	PrintBackground bool
	// PreferCSSPageSize lets an @page rule in a print snippet override Size.
	PreferCSSPageSize bool
}

// DefaultPageConfig is A4 portrait with 1 cm margins and backgrounds on.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Size:            A4,
		Orientation:     Portrait,
		Margin:          UniformMargin(1.0),
		Scale:           1.0,
		PrintBackground: true,
	}
}

func (p *PageConfig) resolved() PageConfig {
	d := DefaultPageConfig()
	if p == nil {
		return d
	}
	r := *p
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	switch {
	case r.Scale <= 0:
		r.Scale = d.Scale
	case r.Scale < 0.1:
		r.Scale = 0.1
	case r.Scale > 2:
		r.Scale = 2
	}
	if r.Margin == (Margin{}) {
		r.Margin = d.Margin
	}
	return r
}

func cmToInches(cm float64) float64 {
	return cm / 2.54
}

// paperDimensions returns width and height in inches after orientation.
func (p *PageConfig) paperDimensions() (width, height float64) {
	r := p.resolved()
	w := cmToInches(r.Size.Width)
	h := cmToInches(r.Size.Height)
	if r.Orientation == Landscape {
		return h, w
	}
	return w, h
}

func (p *PageConfig) marginInches() (top, right, bottom, left float64) {
	r := p.resolved()
	return cmToInches(r.Margin.Top),
		cmToInches(r.Margin.Right),
		cmToInches(r.Margin.Bottom),
		cmToInches(r.Margin.Left)
}
