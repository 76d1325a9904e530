package sqlexport

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"dialogedit/internal/dialogue"
)

func sampleCollection() *dialogue.Collection {
	c := dialogue.New()
	c.AddSpeaker(dialogue.Speaker{
		ID:          0,
		Name:        "Hero",
		Color:       "#FF000080",
		Portrait:    "res/hero.png",
		Scale:       dialogue.Scale{X: 1, Y: 1.5},
		TextureRect: &dialogue.Rect{X: 0, Y: 0, Width: 128, Height: 128},
	})
	c.AddSpeaker(dialogue.Speaker{ID: 1, Name: "Ghost", Color: "nope", Scale: dialogue.DefaultScale})
	c.AddLine(dialogue.Line{SpeakerID: 0, Text: "Hello, Café."})
	c.AddLine(dialogue.Line{SpeakerID: 1, Text: "Boo."})
	return c
}

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestExportWritesTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "intro.db")
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	result, err := Export(context.Background(), sampleCollection(), path, Options{
		Source: "intro.json",
		Now:    func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.Speakers != 2 || result.Lines != 2 || result.Path != path {
		t.Fatalf("unexpected result %+v", result)
	}

	db := openDB(t, path)

	var name, color string
	var red, alpha int
	var scaleY float64
	var rectW int
	err = db.QueryRow("SELECT name, color, red, alpha, scale_y, rect_w FROM speakers WHERE position = 0").
		Scan(&name, &color, &red, &alpha, &scaleY, &rectW)
	if err != nil {
		t.Fatalf("query speaker: %v", err)
	}
	if name != "Hero" || color != "#FF000080" || red != 255 || alpha != 128 || scaleY != 1.5 || rectW != 128 {
		t.Fatalf("unexpected speaker row %s %s %d %d %v %d", name, color, red, alpha, scaleY, rectW)
	}

	var ghostRed, ghostRect sql.NullInt64
	if err := db.QueryRow("SELECT red, rect_x FROM speakers WHERE id = 1").Scan(&ghostRed, &ghostRect); err != nil {
		t.Fatalf("query ghost: %v", err)
	}
	if ghostRed.Valid || ghostRect.Valid {
		t.Fatalf("expected NULL colour channels and rect for ghost")
	}

	var text string
	if err := db.QueryRow("SELECT text FROM lines WHERE position = 0").Scan(&text); err != nil {
		t.Fatalf("query line: %v", err)
	}
	if text != "Hello, Café." {
		t.Fatalf("unexpected line text %q", text)
	}

	var exportedAt, source string
	if err := db.QueryRow("SELECT value FROM export_meta WHERE key = 'exported_at'").Scan(&exportedAt); err != nil {
		t.Fatalf("query meta: %v", err)
	}
	if err := db.QueryRow("SELECT value FROM export_meta WHERE key = 'source'").Scan(&source); err != nil {
		t.Fatalf("query meta: %v", err)
	}
	if exportedAt != "2024-05-01T12:00:00Z" || source != "intro.json" {
		t.Fatalf("unexpected meta %q %q", exportedAt, source)
	}
}

func TestExportReplacesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "intro.db")
	if _, err := Export(context.Background(), sampleCollection(), path, Options{}); err != nil {
		t.Fatalf("first Export: %v", err)
	}
	if _, err := Export(context.Background(), dialogue.New(), path, Options{}); err != nil {
		t.Fatalf("second Export: %v", err)
	}

	db := openDB(t, path)
	var count int
	if err := db.QueryRow("SELECT COUNT(1) FROM speakers").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty speakers table after re-export, got %d", count)
	}
}

func TestDefaultPath(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		exportDir string
		want      string
	}{
		{"next to source", "/data/scenes/intro.json", "", "/data/scenes/intro.db"},
		{"no extension", "/data/intro", "", "/data/intro.db"},
		{"export dir", "/data/scenes/intro.json", "/exports", "/exports/intro.db"},
		{"sanitized", "/data/act:1?.json", "/exports", "/exports/act-1.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultPath(tt.source, tt.exportDir); got != tt.want {
				t.Fatalf("DefaultPath(%q, %q) = %q, want %q", tt.source, tt.exportDir, got, tt.want)
			}
		})
	}
}
