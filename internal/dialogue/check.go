package dialogue

import (
	"fmt"
	"strings"
)

// Severity ranks a consistency issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes reported by Check.
const (
	IssueDuplicateSpeakerID = "duplicate_speaker_id"
	IssueSpeakerIDPosition  = "speaker_id_position"
	IssueInvalidColor       = "invalid_color"
	IssueMissingTextureRect = "missing_texture_rect"
	IssueBadTextureRect     = "bad_texture_rect"
	IssueBadScale           = "bad_scale"
	IssueUnknownSpeaker     = "unknown_speaker"
	IssueEmptyText          = "empty_text"
)

// Issue is a single consistency finding. Index is the 0-based position of the
// offending speaker or line.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Section  string   `json:"section"` // speakers or lines
	Index    int      `json:"index"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	label := "Speaker"
	if i.Section == "lines" {
		label = "Line"
	}
	return fmt.Sprintf("%s: %s %d: %s", i.Severity, label, i.Index+1, i.Message)
}

// HasErrors reports whether any issue is error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Check reports problems the game's loader would reject or misinterpret.
// Speakers are checked in order, then lines.
func Check(c *Collection) []Issue {
	if c == nil {
		return nil
	}
	var issues []Issue
	speakerIssue := func(sev Severity, code string, idx int, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Code: code, Section: "speakers", Index: idx, Message: fmt.Sprintf(format, args...)})
	}
	lineIssue := func(sev Severity, code string, idx int, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Code: code, Section: "lines", Index: idx, Message: fmt.Sprintf(format, args...)})
	}

	firstByID := make(map[int]int, len(c.Speakers))
	for i, s := range c.Speakers {
		if prev, seen := firstByID[s.ID]; seen {
			speakerIssue(SeverityError, IssueDuplicateSpeakerID, i, "id %d already used by speaker %d", s.ID, prev+1)
		} else {
			firstByID[s.ID] = i
		}
		if s.ID != i {
			speakerIssue(SeverityWarning, IssueSpeakerIDPosition, i, "id %d differs from its position %d; the game resolves speaker_id by position", s.ID, i)
		}
		if _, err := ParseColor(s.Color); err != nil {
			speakerIssue(SeverityError, IssueInvalidColor, i, "%v", err)
		}
		switch {
		case s.TextureRect == nil:
			speakerIssue(SeverityError, IssueMissingTextureRect, i, "texture_rect is missing; the game reads it for every speaker")
		case strings.TrimSpace(s.Portrait) != "" && (s.TextureRect.Width <= 0 || s.TextureRect.Height <= 0):
			speakerIssue(SeverityError, IssueBadTextureRect, i, "texture_rect %s must have positive width and height", s.TextureRect)
		}
		if s.Scale.X <= 0 || s.Scale.Y <= 0 {
			speakerIssue(SeverityWarning, IssueBadScale, i, "scaling factor X=%g, Y=%g is not positive", s.Scale.X, s.Scale.Y)
		}
	}

	for i, l := range c.Lines {
		if _, ok := firstByID[l.SpeakerID]; !ok {
			lineIssue(SeverityError, IssueUnknownSpeaker, i, "speaker_id %d does not match any speaker", l.SpeakerID)
		}
		if strings.TrimSpace(l.Text) == "" {
			lineIssue(SeverityWarning, IssueEmptyText, i, "text is empty")
		}
	}
	return issues
}
