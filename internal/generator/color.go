package generator

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type rgb255 struct {
	r, g, b int
}

func parseHex(hex string) (rgb255, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rgb255{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return rgb255{int(r), int(g), int(b)}, nil
}

func (c rgb255) hex() string {
	return colorful.Color{
		R: float64(c.r) / 255.0,
		G: float64(c.g) / 255.0,
		B: float64(c.b) / 255.0,
	}.Hex()
}

// Lighten raises every channel by round(2.55*percent), clamped to [0,255].
// The result is a lowercase #rrggbb string.
func Lighten(hex string, percent float64) (string, error) {
	return shift(hex, percentToAmount(percent))
}

// Darken lowers every channel by round(2.55*percent), floored at 0.
func Darken(hex string, percent float64) (string, error) {
	return shift(hex, -percentToAmount(percent))
}

// percentToAmount 四舍五入，.5 向正无穷方向取整
func percentToAmount(percent float64) int {
	return int(math.Floor(2.55*percent + 0.5))
}

func shift(hex string, amount int) (string, error) {
	c, err := parseHex(hex)
	if err != nil {
		return "", err
	}
	return rgb255{
		r: clampChannel(c.r + amount),
		g: clampChannel(c.g + amount),
		b: clampChannel(c.b + amount),
	}.hex(), nil
}

// clampChannel: v < 255 ? (v < 1 ? 0 : v) : 255
func clampChannel(v int) int {
	if v < 255 {
		if v < 1 {
			return 0
		}
		return v
	}
	return 255
}
