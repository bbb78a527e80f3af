package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// rgba is a parsed color with 0-255 channels and an alpha in [0, 1].
type rgba struct {
	r, g, b uint8
	a       float64
}

// WrapVariable wraps a custom property name in var() unless it already is.
func WrapVariable(name string) string {
	if strings.HasPrefix(name, "var(") && strings.HasSuffix(name, ")") {
		return name
	}
	return "var(" + name + ")"
}

// RGBA converts a #hex, rgb() or hsl() color into rgba() notation whose alpha
// channel is driven by the opacity custom property. Colors that already
// carry transparency multiply it in with calc(). Values that are not
// recognizable colors are returned unchanged.
func RGBA(value, opacity string) string {
	c, ok := parseColor(value)
	if !ok {
		return value
	}
	alpha := WrapVariable(opacity)
	if c.a < 1 {
		alpha = fmt.Sprintf("calc(%s * %s)", formatFloat(c.a), alpha)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.r, c.g, c.b, alpha)
}

// convertColor resolves palette names before converting.
func convertColor(value CSSValue, palette *OrderedMap[string], opacity string) CSSValue {
	s := value.Raw
	if base, ok := palette.Get(s); ok {
		s = base
	}
	return CSSValue{Raw: RGBA(s, opacity)}
}

func parseColor(value string) (rgba, bool) {
	s := strings.TrimSpace(strings.ToLower(value))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSLFunc(s)
	}
	return rgba{}, false
}

func parseHex(hex string) (rgba, bool) {
	alpha := 1.0
	switch len(hex) {
	case 4:
		a, err := strconv.ParseUint(strings.Repeat(hex[3:], 2), 16, 8)
		if err != nil {
			return rgba{}, false
		}
		alpha = float64(a) / 255
		hex = hex[:3]
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return rgba{}, false
		}
		alpha = float64(a) / 255
		hex = hex[:6]
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return rgba{}, false
	}
	r, g, b := c.RGB255()
	return rgba{r: r, g: g, b: b, a: roundAlpha(alpha)}, true
}

// functionArgs splits "name(a, b, c / d)" into its arguments.
func functionArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	inner := strings.NewReplacer(",", " ", "/", " ").Replace(s[open+1 : len(s)-1])
	return strings.Fields(inner), true
}

func parseRGBFunc(s string) (rgba, bool) {
	args, ok := functionArgs(s)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return rgba{}, false
	}
	var channels [3]uint8
	for i := range channels {
		v, ok := parseChannel(args[i])
		if !ok {
			return rgba{}, false
		}
		channels[i] = v
	}
	alpha := 1.0
	if len(args) == 4 {
		if alpha, ok = parseAlpha(args[3]); !ok {
			return rgba{}, false
		}
	}
	return rgba{r: channels[0], g: channels[1], b: channels[2], a: alpha}, true
}

func parseHSLFunc(s string) (rgba, bool) {
	args, ok := functionArgs(s)
	if !ok || (len(args) != 3 && len(args) != 4) {
		return rgba{}, false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return rgba{}, false
	}
	sat, ok := parsePercent(args[1])
	if !ok {
		return rgba{}, false
	}
	light, ok := parsePercent(args[2])
	if !ok {
		return rgba{}, false
	}
	alpha := 1.0
	if len(args) == 4 {
		if alpha, ok = parseAlpha(args[3]); !ok {
			return rgba{}, false
		}
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, sat, light).Clamped().RGB255()
	return rgba{r: r, g: g, b: b, a: alpha}, true
}

func parseChannel(s string) (uint8, bool) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}
		return uint8(math.Round(clamp(v/100) * 255)), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return uint8(math.Round(math.Max(0, math.Min(255, v)))), true
}

func parsePercent(s string) (float64, bool) {
	p, ok := strings.CutSuffix(s, "%")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return 0, false
	}
	return clamp(v / 100), true
}

func parseAlpha(s string) (float64, bool) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}
		return roundAlpha(clamp(v / 100)), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return roundAlpha(clamp(v)), true
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// roundAlpha keeps alpha values short enough to read in the stylesheet.
func roundAlpha(a float64) float64 {
	return math.Round(a*1000) / 1000
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
