package dialogue

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeFormat(t *testing.T) {
	c := New()
	c.AddSpeaker(Speaker{ID: 0, Name: "勇者", Color: "#ff0000", Portrait: "res/hero.png", Scale: Scale{X: 1.5, Y: 1}, TextureRect: &Rect{X: 0, Y: 0, Width: 64, Height: 64}})
	c.AddLine(Line{SpeakerID: 0, Text: "<b>Hi</b> & bye"})

	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{
  "speakers": [
    {
      "id": 0,
      "name": "勇者",
      "color": "#FF0000",
      "portrait": "res/hero.png",
      "portrait_scaling_factor": [
        1.5,
        1
      ],
      "texture_rect": [
        0,
        0,
        64,
        64
      ]
    }
  ],
  "lines": [
    {
      "speaker_id": 0,
      "text": "<b>Hi</b> & bye"
    }
  ]
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("encoded document mismatch (-want +got):\n%s", diff)
	}
	if c.Speakers[0].Color != "#ff0000" {
		t.Fatalf("Encode must not mutate its input, colour is now %q", c.Speakers[0].Color)
	}
}

func TestEncodeEmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &Collection{}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := buf.String(); got != "{\n  \"speakers\": [],\n  \"lines\": []\n}\n" {
		t.Fatalf("unexpected empty document %q", got)
	}
}

func TestDecodeAppliesDefaults(t *testing.T) {
	doc := `{"speakers":[{"id":0,"name":"N","color":"#abcdef","portrait":""}],"lines":[{"speaker_id":0,"text":"x"}]}`
	c, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s := c.Speakers[0]
	if s.Scale != DefaultScale {
		t.Fatalf("expected default scale, got %+v", s.Scale)
	}
	if s.TextureRect != nil {
		t.Fatalf("expected missing texture rect, got %v", s.TextureRect)
	}
	if s.Color != "#ABCDEF" {
		t.Fatalf("expected normalized colour, got %q", s.Color)
	}
}

func TestDecodeMissingLists(t *testing.T) {
	c, err := Decode(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Speakers == nil || c.Lines == nil {
		t.Fatal("expected empty lists for missing keys")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantLine   int
		wantColumn int
	}{
		{"syntax", "{\n  \"speakers\": [,]\n}", 2, 16},
		{"wrong rect length", `{"speakers":[{"id":0,"texture_rect":[1,2]}]}`, 1, 14},
		{"wrong id type", `{"speakers":[{"id":"zero"}]}`, 1, 14},
		{"bad scale entry", "{\"speakers\": [\n  {\"id\": 0},\n  {\"id\": 1, \"portrait_scaling_factor\": [\"a\", 1]}\n]}", 3, 3},
		{"wrong line type", "{\n  \"speakers\": [],\n  \"lines\": [\n    {\"speaker_id\": 0, \"text\": \"ok\"},\n    {\"speaker_id\": \"0\"}\n  ]\n}", 5, 5},
		{"speakers not a list", "{\"speakers\": 5}", 1, 14},
		{"top-level array", `[]`, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %v", err)
			}
			if decodeErr.Line != tt.wantLine || decodeErr.Column != tt.wantColumn {
				t.Fatalf("position = %d:%d, want %d:%d (%v)",
					decodeErr.Line, decodeErr.Column, tt.wantLine, tt.wantColumn, err)
			}
		})
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "intro.json")
	original := sampleCollection()

	if err := Save(path, original, SaveOptions{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	original.Normalize()
	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveWritesBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intro.json")
	first := New()
	first.AddLine(Line{SpeakerID: 0, Text: "first"})
	if err := Save(path, first, SaveOptions{Backup: true}); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("no backup expected for a new file, stat err = %v", err)
	}

	second := New()
	second.AddLine(Line{SpeakerID: 0, Text: "second"})
	if err := Save(path, second, SaveOptions{Backup: true}); err != nil {
		t.Fatalf("Save second: %v", err)
	}
	backup, err := Load(path + ".bak")
	if err != nil {
		t.Fatalf("Load backup: %v", err)
	}
	if backup.Lines[0].Text != "first" {
		t.Fatalf("backup should hold the previous document, got %q", backup.Lines[0].Text)
	}
	current, err := Load(path)
	if err != nil {
		t.Fatalf("Load current: %v", err)
	}
	if current.Lines[0].Text != "second" {
		t.Fatalf("unexpected current text %q", current.Lines[0].Text)
	}
}

func TestSaveIntoFileParentFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Save(filepath.Join(blocker, "x.json"), New(), SaveOptions{}); err == nil {
		t.Fatal("expected error when parent is a file")
	}
}

func TestLineColumn(t *testing.T) {
	data := []byte("ab\ncd\nef")
	tests := []struct {
		offset     int64
		line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{7, 3, 2},
		{100, 3, 3},
	}
	for _, tt := range tests {
		line, col := lineColumn(data, tt.offset)
		if line != tt.line || col != tt.col {
			t.Fatalf("lineColumn(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}
