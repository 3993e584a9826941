package deck

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColorKind is the DrawingML colour model of a Color.
type ColorKind int

const (
	ColorRGB         ColorKind = iota // srgbClr, Value is RRGGBB
	ColorScheme                       // schemeClr, Value is the scheme slot (tx1, accent2, ...)
	ColorSystem                       // sysClr, Value is the system name, Fallback its last value
	ColorPreset                       // prstClr, Value is the preset name
	ColorUnsupported                  // any other fill; Value names it
)

func (k ColorKind) String() string {
	switch k {
	case ColorRGB:
		return "rgb"
	case ColorScheme:
		return "scheme"
	case ColorSystem:
		return "system"
	case ColorPreset:
		return "preset"
	default:
		return "unsupported"
	}
}

// Color is a run colour with its DrawingML transforms (lumMod, lumOff,
// alpha, shade, tint, ...) in document order.
type Color struct {
	Kind       ColorKind
	Value      string
	Fallback   string
	Transforms []ColorTransform
}

// ColorTransform is one colour modifier. Val is in thousandths of a percent.
type ColorTransform struct {
	Name string
	Val  int
}

// ErrUnsupportedColor is returned for colours that cannot be copied or resolved.
var ErrUnsupportedColor = errors.New("unsupported color")

// RGB returns a plain RGB colour.
func RGB(hex string) *Color {
	return &Color{Kind: ColorRGB, Value: strings.ToUpper(hex)}
}

// Scheme returns a theme colour reference.
func Scheme(slot string, transforms ...ColorTransform) *Color {
	return &Color{Kind: ColorScheme, Value: slot, Transforms: transforms}
}

// Copy returns a deep copy of c, or ErrUnsupportedColor when c cannot be
// reproduced on another run.
func (c *Color) Copy() (*Color, error) {
	if c == nil {
		return nil, nil
	}
	if c.Kind == ColorUnsupported {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedColor, c.Value)
	}
	out := *c
	out.Transforms = append([]ColorTransform(nil), c.Transforms...)
	return &out, nil
}

// Transform returns the value of the named transform.
func (c *Color) Transform(name string) (int, bool) {
	for _, t := range c.Transforms {
		if t.Name == name {
			return t.Val, true
		}
	}
	return 0, false
}

func (c *Color) String() string {
	if c == nil {
		return "inherit"
	}
	s := c.Kind.String() + ":" + c.Value
	for _, t := range c.Transforms {
		s += fmt.Sprintf(" %s=%d", t.Name, t.Val)
	}
	return s
}

// Theme holds a theme's colour scheme: slot name (dk1, lt1, accent1, ...) to RRGGBB.
type Theme struct {
	Name   string
	Colors map[string]string
}

// Resolved is a concrete colour.
type Resolved struct {
	RGB   string // RRGGBB
	Alpha int    // thousandths of a percent, 100000 is opaque
}

var schemeAliases = map[string]string{
	"bg1": "lt1",
	"tx1": "dk1",
	"bg2": "lt2",
	"tx2": "dk2",
}

var presetColors = map[string]string{
	"black":     "000000",
	"white":     "FFFFFF",
	"red":       "FF0000",
	"green":     "008000",
	"lime":      "00FF00",
	"blue":      "0000FF",
	"yellow":    "FFFF00",
	"orange":    "FFA500",
	"purple":    "800080",
	"gray":      "808080",
	"grey":      "808080",
	"navy":      "000080",
	"darkBlue":  "00008B",
	"darkRed":   "8B0000",
	"darkGreen": "006400",
	"pink":      "FFC0CB",
	"gold":      "FFD700",
	"silver":    "C0C0C0",
}

// Resolve computes the RGB value and alpha of c against the theme.
func (th Theme) Resolve(c *Color) (Resolved, error) {
	if c == nil {
		return Resolved{}, fmt.Errorf("%w: no color", ErrUnsupportedColor)
	}
	var base string
	switch c.Kind {
	case ColorRGB:
		base = c.Value
	case ColorScheme:
		slot := c.Value
		if alias, ok := schemeAliases[slot]; ok {
			slot = alias
		}
		v, ok := th.Colors[slot]
		if !ok {
			return Resolved{}, fmt.Errorf("%w: scheme color %q not in theme", ErrUnsupportedColor, c.Value)
		}
		base = v
	case ColorSystem:
		if c.Fallback == "" {
			return Resolved{}, fmt.Errorf("%w: system color %q without last value", ErrUnsupportedColor, c.Value)
		}
		base = c.Fallback
	case ColorPreset:
		v, ok := presetColors[c.Value]
		if !ok {
			return Resolved{}, fmt.Errorf("%w: preset color %q", ErrUnsupportedColor, c.Value)
		}
		base = v
	default:
		return Resolved{}, fmt.Errorf("%w: %s", ErrUnsupportedColor, c.Value)
	}

	r, g, b, err := parseHex(base)
	if err != nil {
		return Resolved{}, err
	}
	alpha := 100000
	var h, s, l float64
	hsl := false
	for _, t := range c.Transforms {
		f := float64(t.Val) / 100000
		switch t.Name {
		case "lumMod":
			if !hsl {
				h, s, l = rgbToHSL(r, g, b)
				hsl = true
			}
			l *= f
		case "lumOff":
			if !hsl {
				h, s, l = rgbToHSL(r, g, b)
				hsl = true
			}
			l += f
		case "shade", "tint":
			if hsl {
				r, g, b = hslToRGB(h, s, clamp01(l))
				hsl = false
			}
			if t.Name == "shade" {
				r, g, b = r*f, g*f, b*f
			} else {
				r, g, b = r+(1-r)*(1-f), g+(1-g)*(1-f), b+(1-b)*(1-f)
			}
		case "alpha":
			alpha = t.Val
		}
	}
	if hsl {
		r, g, b = hslToRGB(h, s, clamp01(l))
	}
	return Resolved{RGB: toHex(r, g, b), Alpha: alpha}, nil
}

func parseHex(s string) (r, g, b float64, err error) {
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid RGB value %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid RGB value %q: %w", s, err)
	}
	return float64(v>>16&0xFF) / 255, float64(v>>8&0xFF) / 255, float64(v&0xFF) / 255, nil
}

func toHex(r, g, b float64) string {
	c := func(v float64) int { return int(math.Round(clamp01(v) * 255)) }
	return fmt.Sprintf("%02X%02X%02X", c(r), c(g), c(b))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func rgbToHSL(r, g, b float64) (h, s, l float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2
	if maxC == minC {
		return 0, 0, l
	}
	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return hueToRGB(p, q, h+1.0/3), hueToRGB(p, q, h), hueToRGB(p, q, h-1.0/3)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
