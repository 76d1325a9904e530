package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/textutil"
)

// Options controls how collections are rendered.
type Options struct {
	Color      bool
	Table      bool
	TableStyle string
}

// FormatFloat prints f with at least one fractional digit (1 -> "1.0").
func FormatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WriteSpeaker prints the detail block for one speaker.
func WriteSpeaker(w io.Writer, s dialogue.Speaker, opts Options) {
	fmt.Fprintf(w, "  ID: %d\n", s.ID)
	name := s.Name
	if opts.Color {
		name = Paint(name, s.Color)
	}
	fmt.Fprintf(w, "  Name: %s\n", name)
	color := s.Color
	if opts.Color {
		if swatch := Swatch(s.Color); swatch != "" {
			color += " " + swatch
		}
	}
	fmt.Fprintf(w, "  Color: %s\n", color)
	fmt.Fprintf(w, "  Portrait: %s\n", s.Portrait)
	fmt.Fprintf(w, "  Scaling: X=%s, Y=%s\n", FormatFloat(s.Scale.X), FormatFloat(s.Scale.Y))
	if s.TextureRect != nil {
		fmt.Fprintf(w, "  Texture Rect: %s\n", s.TextureRect)
	}
}

// WriteLine prints the detail block for one line.
func WriteLine(w io.Writer, l dialogue.Line) {
	fmt.Fprintf(w, "  Speaker ID: %d\n", l.SpeakerID)
	fmt.Fprintf(w, "  Text: %s\n", l.Text)
}

// WriteCollection prints every speaker and line, either as numbered detail
// blocks or as two tables.
func WriteCollection(w io.Writer, c *dialogue.Collection, opts Options) {
	if c == nil {
		c = dialogue.New()
	}
	fmt.Fprintln(w, "\n--- Current Speakers ---")
	if len(c.Speakers) == 0 {
		fmt.Fprintln(w, "No speakers added yet.")
	} else if opts.Table {
		fmt.Fprintln(w, SpeakersTable(c, opts))
	} else {
		for i, s := range c.Speakers {
			fmt.Fprintf(w, "\nSpeaker %d:\n", i+1)
			WriteSpeaker(w, s, opts)
		}
	}

	fmt.Fprintln(w, "\n--- Current Dialogue Lines ---")
	if len(c.Lines) == 0 {
		fmt.Fprintln(w, "No lines added yet.")
	} else if opts.Table {
		fmt.Fprintln(w, LinesTable(c, opts))
	} else {
		for i, l := range c.Lines {
			fmt.Fprintf(w, "\nLine %d:\n", i+1)
			WriteLine(w, l)
		}
	}
}

// SpeakersTable renders the speaker list as a table.
func SpeakersTable(c *dialogue.Collection, opts Options) string {
	rows := make([][]string, 0, len(c.Speakers))
	for i, s := range c.Speakers {
		color := s.Color
		if opts.Color {
			if swatch := Swatch(s.Color); swatch != "" {
				color = swatch + " " + color
			}
		}
		rect := "-"
		if s.TextureRect != nil {
			rect = s.TextureRect.String()
		}
		portrait := s.Portrait
		if portrait == "" {
			portrait = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.ID),
			s.Name,
			color,
			portrait,
			FormatFloat(s.Scale.X) + " x " + FormatFloat(s.Scale.Y),
			rect,
		})
	}
	return Table(
		[]string{"#", "ID", "Name", "Color", "Portrait", "Scale", "Texture Rect"},
		rows,
		[]ColumnAlignment{AlignRight, AlignRight},
		opts.TableStyle,
	)
}

const maxTableText = 60

// LinesTable renders the line list as a table, resolving speaker names.
func LinesTable(c *dialogue.Collection, opts Options) string {
	rows := make([][]string, 0, len(c.Lines))
	for i, l := range c.Lines {
		speaker := "?"
		if s, ok := c.Speaker(l.SpeakerID); ok {
			speaker = s.Name
			if opts.Color {
				speaker = Paint(speaker, s.Color)
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(l.SpeakerID),
			speaker,
			textutil.Truncate(l.Text, maxTableText),
		})
	}
	return Table(
		[]string{"#", "Speaker ID", "Speaker", "Text"},
		rows,
		[]ColumnAlignment{AlignRight, AlignRight},
		opts.TableStyle,
	)
}
