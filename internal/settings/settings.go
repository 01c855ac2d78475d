// Package settings holds the user-adjustable print settings and their
// on-disk persistence.
package settings

import "fmt"

// Levels is the number of heading levels, h1 through h6.
const Levels = 6

// FallbackColor is used for heading levels a theme does not define.
const FallbackColor = "#000000"

// Settings is the flat record of print options. Sizes and colors are raw
// CSS values and are never validated.
type Settings struct {
	PrintTitle           bool   `toml:"printTitle"`
	FontSize             string `toml:"fontSize"`
	H1Size               string `toml:"h1Size"`
	H2Size               string `toml:"h2Size"`
	H3Size               string `toml:"h3Size"`
	H4Size               string `toml:"h4Size"`
	H5Size               string `toml:"h5Size"`
	H6Size               string `toml:"h6Size"`
	H1Color              string `toml:"h1Color"`
	H2Color              string `toml:"h2Color"`
	H3Color              string `toml:"h3Color"`
	H4Color              string `toml:"h4Color"`
	H5Color              string `toml:"h5Color"`
	H6Color              string `toml:"h6Color"`
	HasInitializedColors bool   `toml:"hasInitializedColors"`
	CombineFolderNotes   bool   `toml:"combineFolderNotes"`
	HRPageBreaks         bool   `toml:"hrPageBreaks"`
}

// Defaults returns the settings used before anything has been saved.
func Defaults() Settings {
	return Settings{
		PrintTitle: true,
		FontSize:   "14px",
		H1Size:     "20px",
		H2Size:     "18px",
		H3Size:     "16px",
		H4Size:     "14px",
		H5Size:     "14px",
		H6Size:     "12px",
		H1Color:    "black",
		H2Color:    "black",
		H3Color:    "black",
		H4Color:    "black",
		H5Color:    "black",
		H6Color:    "black",
	}
}

// sizeField returns a pointer to the size field for level.
func (s *Settings) sizeField(level int) *string {
	switch level {
	case 1:
		return &s.H1Size
	case 2:
		return &s.H2Size
	case 3:
		return &s.H3Size
	case 4:
		return &s.H4Size
	case 5:
		return &s.H5Size
	case 6:
		return &s.H6Size
	}
	return nil
}

func (s *Settings) colorField(level int) *string {
	switch level {
	case 1:
		return &s.H1Color
	case 2:
		return &s.H2Color
	case 3:
		return &s.H3Color
	case 4:
		return &s.H4Color
	case 5:
		return &s.H5Color
	case 6:
		return &s.H6Color
	}
	return nil
}

// HeadingSize returns the font size configured for heading level 1..6.
// It returns "" for any other level.
func (s Settings) HeadingSize(level int) string {
	if f := s.sizeField(level); f != nil {
		return *f
	}
	return ""
}

// HeadingColor returns the color configured for heading level 1..6.
func (s Settings) HeadingColor(level int) string {
	if f := s.colorField(level); f != nil {
		return *f
	}
	return ""
}

// HeadingColors returns the h1..h6 colors keyed by level.
func (s Settings) HeadingColors() map[int]string {
	colors := make(map[int]string, Levels)
	for level := 1; level <= Levels; level++ {
		colors[level] = s.HeadingColor(level)
	}
	return colors
}

// SetHeadingColor sets the color for a heading level.
func (s *Settings) SetHeadingColor(level int, color string) error {
	f := s.colorField(level)
	if f == nil {
		return fmt.Errorf("settings: heading level %d out of range", level)
	}
	*f = color
	return nil
}

// ApplyThemeColors copies resolved theme colors into h1..h6. Levels absent
// from colors get [FallbackColor].
func (s *Settings) ApplyThemeColors(colors map[int]string) {
	for level := 1; level <= Levels; level++ {
		c, ok := colors[level]
		if !ok || c == "" {
			c = FallbackColor
		}
		*s.colorField(level) = c
	}
	s.HasInitializedColors = true
}
