package themecolor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var numberRe = regexp.MustCompile(`-?[0-9]*\.?[0-9]+`)

// IsHex reports whether token is written as a hex literal. The digits are
// not checked.
func IsHex(token string) bool {
	return strings.HasPrefix(strings.TrimSpace(token), "#")
}

// IsRGB reports whether token is an rgb() or rgba() function.
func IsRGB(token string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(token)), "rgb")
}

// RGBToHex converts the first three numeric components of an rgb()/rgba()
// value to #rrggbb. Fractions are truncated and components clamped to
// 0..255; any alpha is dropped. Input with fewer than three numbers is
// returned unchanged.
func RGBToHex(rgb string) string {
	values := numberRe.FindAllString(rgb, 3)
	if len(values) < 3 {
		return rgb
	}
	var c [3]int
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return rgb
		}
		c[i] = clamp(int(f), 0, 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
