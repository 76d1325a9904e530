package render

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"dialogedit/internal/config"
	"dialogedit/internal/dialogue"
)

func sample() *dialogue.Collection {
	c := dialogue.New()
	c.AddSpeaker(dialogue.Speaker{ID: 0, Name: "Hero", Color: "#FF0000", Portrait: "res/hero.png", Scale: dialogue.Scale{X: 1, Y: 1.25}, TextureRect: &dialogue.Rect{Width: 128, Height: 128}})
	c.AddSpeaker(dialogue.Speaker{ID: 1, Name: "Sign", Color: "#FFFFFF", Scale: dialogue.DefaultScale})
	c.AddLine(dialogue.Line{SpeakerID: 0, Text: "Hello."})
	c.AddLine(dialogue.Line{SpeakerID: 4, Text: strings.Repeat("long ", 20)})
	return c
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{1: "1.0", 1.5: "1.5", 0: "0.0", -2: "-2.0", 0.125: "0.125"}
	for in, want := range tests {
		if got := FormatFloat(in); got != want {
			t.Fatalf("FormatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteSpeakerPlain(t *testing.T) {
	var buf bytes.Buffer
	WriteSpeaker(&buf, sample().Speakers[0], Options{})
	want := "  ID: 0\n" +
		"  Name: Hero\n" +
		"  Color: #FF0000\n" +
		"  Portrait: res/hero.png\n" +
		"  Scaling: X=1.0, Y=1.25\n" +
		"  Texture Rect: [0, 0, 128, 128]\n"
	if buf.String() != want {
		t.Fatalf("unexpected speaker block:\n%s", buf.String())
	}
}

func TestWriteSpeakerOmitsMissingRect(t *testing.T) {
	var buf bytes.Buffer
	WriteSpeaker(&buf, sample().Speakers[1], Options{})
	if strings.Contains(buf.String(), "Texture Rect") {
		t.Fatalf("expected no texture rect line:\n%s", buf.String())
	}
}

func TestWriteSpeakerColor(t *testing.T) {
	var buf bytes.Buffer
	WriteSpeaker(&buf, sample().Speakers[0], Options{Color: true})
	out := buf.String()
	if !strings.Contains(out, "\x1b[38;2;255;0;0mHero") {
		t.Fatalf("expected painted name, got %q", out)
	}
	if !strings.Contains(out, "#FF0000 \x1b[48;2;255;0;0m") {
		t.Fatalf("expected swatch after colour, got %q", out)
	}
}

func TestWriteCollectionEmpty(t *testing.T) {
	var buf bytes.Buffer
	WriteCollection(&buf, dialogue.New(), Options{})
	want := "\n--- Current Speakers ---\nNo speakers added yet.\n\n--- Current Dialogue Lines ---\nNo lines added yet.\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestWriteCollectionNumbersEntries(t *testing.T) {
	var buf bytes.Buffer
	WriteCollection(&buf, sample(), Options{})
	out := buf.String()
	for _, want := range []string{"\nSpeaker 1:\n  ID: 0", "\nSpeaker 2:\n  ID: 1", "\nLine 1:\n  Speaker ID: 0\n  Text: Hello.", "\nLine 2:\n  Speaker ID: 4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteCollectionTables(t *testing.T) {
	var buf bytes.Buffer
	WriteCollection(&buf, sample(), Options{Table: true, TableStyle: "ascii"})
	out := buf.String()
	for _, want := range []string{"TEXTURE RECT", "res/hero.png", "1.0 x 1.25", "SPEAKER ID", "Hello.", "?", "…"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Speaker 1:") {
		t.Fatalf("table mode should not print detail blocks:\n%s", out)
	}
}

func TestTablePadsShortRows(t *testing.T) {
	out := Table([]string{"A", "B"}, [][]string{{"only"}}, nil, "light")
	if !strings.Contains(out, "only") {
		t.Fatalf("unexpected table %q", out)
	}
	if Table(nil, nil, nil, "") != "" {
		t.Fatal("expected empty output without headers")
	}
}

func TestSwatchAndPaintInvalid(t *testing.T) {
	if Swatch("nope") != "" {
		t.Fatal("expected empty swatch for invalid colour")
	}
	if Paint("x", "nope") != "x" {
		t.Fatal("expected unpainted text for invalid colour")
	}
}

func TestShouldColorize(t *testing.T) {
	var buf bytes.Buffer
	if !ShouldColorize(&buf, config.ColorAlways) {
		t.Fatal("always should colourize")
	}
	if ShouldColorize(os.Stdout, config.ColorNever) {
		t.Fatal("never should not colourize")
	}
	if ShouldColorize(&buf, config.ColorAuto) {
		t.Fatal("auto should not colourize a buffer")
	}
	t.Setenv("NO_COLOR", "1")
	if ShouldColorize(os.Stdout, config.ColorAuto) {
		t.Fatal("NO_COLOR should disable auto colour")
	}
}
