package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"dialogedit/internal/config"
	"dialogedit/internal/dialogue"
)

// WriteConfigFile encodes cfg as TOML into dir and returns the file path.
func WriteConfigFile(t testing.TB, dir string, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "dialogedit.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config %s: %v", path, err)
	}
	return path
}

// SampleCollection returns a small valid collection with two speakers and
// three lines.
func SampleCollection() *dialogue.Collection {
	c := dialogue.New()
	c.AddSpeaker(dialogue.Speaker{
		ID:          0,
		Name:        "Hero",
		Color:       "#FF0000",
		Portrait:    "res/hero.png",
		Scale:       dialogue.DefaultScale,
		TextureRect: &dialogue.Rect{Width: 128, Height: 128},
	})
	c.AddSpeaker(dialogue.Speaker{
		ID:          1,
		Name:        "Sage",
		Color:       "#00FF0080",
		Scale:       dialogue.Scale{X: 0.5, Y: 0.5},
		TextureRect: &dialogue.Rect{X: 128, Width: 64, Height: 64},
	})
	c.AddLine(dialogue.Line{SpeakerID: 0, Text: "Where am I?"})
	c.AddLine(dialogue.Line{SpeakerID: 1, Text: "Somewhere safe."})
	c.AddLine(dialogue.Line{SpeakerID: 0, Text: "Thanks."})
	return c
}

// WriteDocument saves c to path, creating parent directories.
func WriteDocument(t testing.TB, path string, c *dialogue.Collection) {
	t.Helper()

	if err := dialogue.Save(path, c, dialogue.SaveOptions{}); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

// WriteRaw writes data to path verbatim, for malformed-document tests.
func WriteRaw(t testing.TB, path, data string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MustLoad loads the document at path or fails the test.
func MustLoad(t testing.TB, path string) *dialogue.Collection {
	t.Helper()

	c, err := dialogue.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return c
}
