package dialogue

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidID reports an id that is not a plain non-negative integer.
	ErrInvalidID = errors.New("invalid ID, please enter an integer")
	// ErrInvalidScale reports a scaling factor that is not a finite number.
	ErrInvalidScale = errors.New("invalid scaling factor, please enter a number")
	// ErrRectCount reports a texture rect without exactly four components.
	ErrRectCount = errors.New("invalid format, please enter exactly four comma-separated integers")
	// ErrRectValue reports a texture rect component that is not an integer.
	ErrRectValue = errors.New("invalid input, please enter integers for x, y, width, and height")
)

// ParseID accepts ASCII digits only: no sign, no separators.
func ParseID(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrInvalidID
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return 0, ErrInvalidID
		}
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return id, nil
}

// ParseScaleComponent parses a single scaling factor.
func ParseScaleComponent(value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidScale
	}
	return f, nil
}

// ParseScale parses both scaling factors.
func ParseScale(x, y string) (Scale, error) {
	sx, err := ParseScaleComponent(x)
	if err != nil {
		return Scale{}, err
	}
	sy, err := ParseScaleComponent(y)
	if err != nil {
		return Scale{}, err
	}
	return Scale{X: sx, Y: sy}, nil
}

// ParseScalePair parses "x,y" as used by command-line flags.
func ParseScalePair(value string) (Scale, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return Scale{}, fmt.Errorf("%w: expected x,y", ErrInvalidScale)
	}
	return ParseScale(parts[0], parts[1])
}

// ParseRect parses "x, y, width, height".
func ParseRect(value string) (Rect, error) {
	parts := strings.Split(value, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Rect{}, ErrRectValue
		}
		values = append(values, n)
	}
	if len(values) != 4 {
		return Rect{}, ErrRectCount
	}
	return Rect{X: values[0], Y: values[1], Width: values[2], Height: values[3]}, nil
}
