package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"  intro.json ":        "intro.json",
		"chapter: 1/2":         "chapter- 1-2",
		"what?<>|\"":           "what",
		"":                     "",
		"boss*fight\\final.db": "boss-fight-final.db",
		"..":                   "",
		".hidden":              "hidden",
		"tab\there":            "tabhere",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
