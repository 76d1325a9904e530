package dialogue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrColorShape reports a colour that is not '#' followed by 6 or 8 characters.
	ErrColorShape = errors.New("must start with '#' and be 7 or 9 characters long")
	// ErrColorDigits reports a correctly shaped colour with non-hex digits.
	ErrColorDigits = errors.New("invalid hex color format")
)

// Color is an 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// ParseColor parses #RRGGBB or #RRGGBBAA. Six digits imply an opaque alpha.
func ParseColor(value string) (Color, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "#") || (len(value) != 7 && len(value) != 9) {
		return Color{}, fmt.Errorf("color %q: %w", value, ErrColorShape)
	}
	digits := value[1:]
	if len(digits) == 6 {
		digits += "FF"
	}
	var channels [4]uint8
	for i := range channels {
		n, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", value, ErrColorDigits)
		}
		channels[i] = uint8(n)
	}
	return Color{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

// NormalizeColor validates value and returns the upper-cased form stored in
// documents. The alpha suffix is kept only when the input had one.
func NormalizeColor(value string) (string, error) {
	if _, err := ParseColor(value); err != nil {
		return "", err
	}
	return strings.ToUpper(strings.TrimSpace(value)), nil
}

// RGBA returns the four channels in order.
func (c Color) RGBA() (r, g, b, a uint8) {
	return c.R, c.G, c.B, c.A
}
