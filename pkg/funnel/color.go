package funnel

import (
	"fmt"
	"math"
	"strings"
)

// Shade lightens or darkens a hex color by a signed fraction. Each RGB
// channel is interpolated linearly toward 255 (positive shade) or 0
// (negative shade) and rounded independently. Shade(-0.2) darkens by 20%.
//
// Both #rgb and #rrggbb inputs are accepted; the result is always #rrggbb.
// Invalid input is returned unchanged.
func Shade(color string, shade float64) string {
	r, g, b, ok := parseHex(color)
	if !ok {
		return color
	}

	t := 0.0
	if shade > 0 {
		t = 255.0
	}
	p := math.Abs(shade)

	shift := func(c int) int {
		return int(math.Round((t-float64(c))*p)) + c
	}
	return fmt.Sprintf("#%02x%02x%02x", shift(r), shift(g), shift(b))
}

// parseHex decodes #rgb or #rrggbb into channel values.
func parseHex(color string) (r, g, b int, ok bool) {
	s := strings.TrimPrefix(color, "#")
	if len(color) == len(s) {
		return 0, 0, 0, false
	}
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}
