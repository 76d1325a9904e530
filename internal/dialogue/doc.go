// Package dialogue models the speaker/line dataset consumed by the game's
// dialogue boxes and owns its JSON representation.
//
// A Collection holds two ordered lists: speakers (name, name colour, portrait,
// portrait scaling factor, texture rectangle) and lines (speaker reference plus
// text). The package parses and validates user-entered field values, reports
// consistency problems the game loader would trip over, and reads and writes
// the document on disk with atomic replacement, optional backups, and an
// advisory lock for editing sessions.
//
// The game resolves a line's speaker_id by the speaker's position in the list,
// not by the stored id. Check reports documents where the two disagree.
package dialogue
