package editor

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/textutil"
)

// errEndOfInput signals that the input stream closed mid-session.
var errEndOfInput = errors.New("end of input")

// readLine prints prompt and returns the next input line without its line
// terminator. A final unterminated line is returned before errEndOfInput.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return strings.TrimRight(line, "\r\n"), nil
			}
			return "", errEndOfInput
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) promptID(prompt string) (int, error) {
	for {
		value, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		id, err := dialogue.ParseID(value)
		if err == nil {
			return id, nil
		}
		fmt.Fprintln(s.out, "Invalid ID. Please enter an integer.")
	}
}

func (s *Session) promptText(prompt string) (string, error) {
	value, err := s.readLine(prompt)
	if err != nil {
		return "", err
	}
	return textutil.NormalizeText(value), nil
}

func (s *Session) promptColor() (string, error) {
	for {
		value, err := s.readLine("Enter Speaker Name Font Color (hex, e.g., #FF0000 or #FF0000FF): ")
		if err != nil {
			return "", err
		}
		color, err := dialogue.NormalizeColor(value)
		switch {
		case err == nil:
			return color, nil
		case errors.Is(err, dialogue.ErrColorShape):
			fmt.Fprintln(s.out, "Invalid hex color format. Must start with '#' and be 7 or 9 characters long.")
		default:
			fmt.Fprintln(s.out, "Invalid hex color format.")
		}
	}
}

// promptScale asks for X then Y. Any invalid component restarts from X; an
// empty answer takes the configured default for that axis.
func (s *Session) promptScale() (dialogue.Scale, error) {
	for {
		x, ok, err := s.promptScaleComponent("X", s.opts.DefaultScale.X)
		if err != nil {
			return dialogue.Scale{}, err
		}
		if !ok {
			continue
		}
		y, ok, err := s.promptScaleComponent("Y", s.opts.DefaultScale.Y)
		if err != nil {
			return dialogue.Scale{}, err
		}
		if !ok {
			continue
		}
		return dialogue.Scale{X: x, Y: y}, nil
	}
}

func (s *Session) promptScaleComponent(axis string, fallback float64) (float64, bool, error) {
	prompt := fmt.Sprintf("Enter Portrait Scaling Factor %s (e.g., 1.0; empty for %g): ", axis, fallback)
	value, err := s.readLine(prompt)
	if err != nil {
		return 0, false, err
	}
	if strings.TrimSpace(value) == "" {
		return fallback, true, nil
	}
	f, err := dialogue.ParseScaleComponent(value)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid scaling factor. Please enter a number.")
		return 0, false, nil
	}
	return f, true, nil
}

func (s *Session) promptRect() (dialogue.Rect, error) {
	for {
		value, err := s.readLine("Enter Texture Rect (x, y, width, height, e.g., 0,0,128,128): ")
		if err != nil {
			return dialogue.Rect{}, err
		}
		rect, err := dialogue.ParseRect(value)
		switch {
		case err == nil:
			return rect, nil
		case errors.Is(err, dialogue.ErrRectCount):
			fmt.Fprintln(s.out, "Invalid format. Please enter exactly four comma-separated integers.")
		default:
			fmt.Fprintln(s.out, "Invalid input. Please enter integers for x, y, width, and height.")
		}
	}
}
