package main

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/testsupport"
)

func TestNewSpeakerLineShowCheck(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := env.docPath("intro.json")

	out, _, err := runCLI(t, env, "", "new", doc)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	requireContains(t, out, "Created empty dialogue collection at "+doc)

	if _, _, err := runCLI(t, env, "", "new", doc); err == nil || !strings.Contains(err.Error(), "--overwrite") {
		t.Fatalf("expected existing-file error, got %v", err)
	}

	out, _, err = runCLI(t, env, "", "speaker", "add", doc,
		"--id", "0", "--name", "Hero", "--color", "#ff0000",
		"--portrait", "res/hero.png", "--scale", "1,1.5", "--rect", "0,0,128,128")
	if err != nil {
		t.Fatalf("speaker add: %v", err)
	}
	requireContains(t, out, "Speaker created:\n  ID: 0\n  Name: Hero\n  Color: #FF0000\n")
	requireContains(t, out, "  Scaling: X=1.0, Y=1.5\n")

	out, _, err = runCLI(t, env, "", "speaker", "add", doc, "--name", "Sage", "--color", "#00FF00", "--rect", "128,0,64,64")
	if err != nil {
		t.Fatalf("second speaker add: %v", err)
	}
	requireContains(t, out, "  ID: 1\n")

	if _, _, err := runCLI(t, env, "", "line", "add", doc, "--speaker", "0", "--text", "Where am I?"); err != nil {
		t.Fatalf("line add: %v", err)
	}

	out, _, err = runCLI(t, env, "", "show", doc)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "--- Current Speakers ---\n\nSpeaker 1:\n  ID: 0\n")
	requireContains(t, out, "\nSpeaker 2:\n  ID: 1\n  Name: Sage\n")
	requireContains(t, out, "--- Current Dialogue Lines ---\n\nLine 1:\n  Speaker ID: 0\n  Text: Where am I?\n")

	out, _, err = runCLI(t, env, "", "check", doc)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Speakers: 2, Lines: 1")
	requireContains(t, out, "  speaker 0: 1 line(s)")
	requireContains(t, out, "No issues found")

	saved := testsupport.MustLoad(t, doc)
	want := dialogue.Speaker{
		ID:          0,
		Name:        "Hero",
		Color:       "#FF0000",
		Portrait:    "res/hero.png",
		Scale:       dialogue.Scale{X: 1, Y: 1.5},
		TextureRect: &dialogue.Rect{Width: 128, Height: 128},
	}
	if diff := cmp.Diff(want, saved.Speakers[0]); diff != "" {
		t.Fatalf("saved speaker mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(doc + ".bak"); err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
}

func TestSpeakerAddValidation(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := env.docPath("intro.json")
	testsupport.WriteDocument(t, doc, testsupport.SampleCollection())

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"duplicate id", []string{"--id", "1", "--name", "X", "--color", "#FFFFFF", "--rect", "0,0,1,1"}, `already used by "Sage"`},
		{"bad id", []string{"--id", "-2", "--name", "X", "--color", "#FFFFFF", "--rect", "0,0,1,1"}, "--id"},
		{"bad color", []string{"--name", "X", "--color", "red", "--rect", "0,0,1,1"}, "--color"},
		{"bad scale", []string{"--name", "X", "--color", "#FFFFFF", "--scale", "1", "--rect", "0,0,1,1"}, "--scale"},
		{"bad rect", []string{"--name", "X", "--color", "#FFFFFF", "--rect", "0,0,1"}, "--rect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"speaker", "add", doc}, tt.args...)
			_, _, err := runCLI(t, env, "", args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if got := len(testsupport.MustLoad(t, doc).Speakers); got != 2 {
		t.Fatalf("failed adds should not modify the document, got %d speakers", got)
	}
}

func TestLineAddUnknownSpeakerFailsCheck(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := env.docPath("intro.json")
	testsupport.WriteDocument(t, doc, testsupport.SampleCollection())

	_, stderr, err := runCLI(t, env, "", "line", "add", doc, "--speaker", "9", "--text", "Hello?")
	if err != nil {
		t.Fatalf("line add: %v", err)
	}
	requireContains(t, stderr, "Warning: no speaker with ID 9 exists yet.")

	out, _, err := runCLI(t, env, "", "check", doc)
	if err == nil {
		t.Fatalf("expected check to fail")
	}
	requireContains(t, err.Error(), "1 error(s) found")
	requireContains(t, out, "error: Line 4:")
	requireContains(t, out, "unattributed: 1 line(s)")
}

func TestCheckJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := env.docPath("intro.json")
	coll := testsupport.SampleCollection()
	coll.AddLine(dialogue.Line{SpeakerID: 1, Text: ""})
	testsupport.WriteDocument(t, doc, coll)

	out, _, err := runCLI(t, env, "", "--json", "check", doc)
	if err != nil {
		t.Fatalf("check --json: %v", err)
	}
	requireContains(t, out, `"valid": true`)
	requireContains(t, out, `"warnings": 1`)
	requireContains(t, out, `"code": "empty_text"`)
}

func TestShowJSONMatchesDocument(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := env.docPath("intro.json")
	testsupport.WriteDocument(t, doc, testsupport.SampleCollection())

	out, _, err := runCLI(t, env, "", "--json", "show", doc)
	if err != nil {
		t.Fatalf("show --json: %v", err)
	}
	data, err := os.ReadFile(doc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := cmp.Diff(string(data), out); diff != "" {
		t.Fatalf("show --json differs from file (-file +show):\n%s", diff)
	}
}

func TestListCommandsRenderTables(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := env.docPath("intro.json")
	testsupport.WriteDocument(t, doc, testsupport.SampleCollection())

	out, _, err := runCLI(t, env, "", "speaker", "list", doc)
	if err != nil {
		t.Fatalf("speaker list: %v", err)
	}
	requireContains(t, out, "NAME")
	requireContains(t, out, "Sage")

	out, _, err = runCLI(t, env, "", "line", "list", doc)
	if err != nil {
		t.Fatalf("line list: %v", err)
	}
	requireContains(t, out, "Somewhere safe.")

	empty := env.docPath("empty.json")
	testsupport.WriteDocument(t, empty, dialogue.New())
	out, _, err = runCLI(t, env, "", "line", "list", empty)
	if err != nil {
		t.Fatalf("line list empty: %v", err)
	}
	requireContains(t, out, "No lines added yet.")
}

func TestMissingDocumentSuggestsNew(t *testing.T) {
	env := setupCLITestEnv(t)
	doc := env.docPath("missing.json")

	_, _, err := runCLI(t, env, "", "show", doc)
	if !errors.Is(err, dialogue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	requireContains(t, err.Error(), "dialogedit new")

	_, _, err = runCLI(t, env, "", "line", "add", doc, "--speaker", "0", "--text", "x")
	if !errors.Is(err, dialogue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from line add, got %v", err)
	}
	if _, statErr := os.Stat(doc + ".lock"); !os.IsNotExist(statErr) {
		t.Fatalf("missing document should not leave a lock file")
	}
}

func TestRequiredLockBlocksConcurrentUpdate(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithLocking(true))
	doc := env.docPath("intro.json")
	testsupport.WriteDocument(t, doc, testsupport.SampleCollection())

	held, err := dialogue.AcquireLock(doc)
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	defer held.Release()

	_, _, err = runCLI(t, env, "", "line", "add", doc, "--speaker", "0", "--text", "blocked")
	if !errors.Is(err, dialogue.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestCheckReadsStandardInput(t *testing.T) {
	env := setupCLITestEnv(t)
	input := `{"speakers": [{"id": 0, "name": "Hero", "color": "#FF0000", "portrait": "", "portrait_scaling_factor": [1, 1]}], "lines": []}`

	out, _, err := runCLI(t, env, input, "check", "-")
	if err == nil {
		t.Fatalf("expected missing texture rect to fail the check")
	}
	requireContains(t, out, "Document: -")
	requireContains(t, out, "texture_rect is missing")

	if _, _, err := runCLI(t, env, input, "line", "add", "-", "--speaker", "0", "--text", "x"); err == nil {
		t.Fatalf("expected stdin update to be rejected")
	}
	if _, _, err := runCLI(t, env, input, "export", "sqlite", "-"); err == nil || !strings.Contains(err.Error(), "--out") {
		t.Fatalf("expected export from stdin to require --out, got %v", err)
	}
}
