// Package sqlexport writes a dialogue collection into a SQLite database so
// tools without a JSON reader can query speakers and lines.
//
// Each export replaces the target database. Speakers keep their position in
// the collection alongside their declared id, because the game resolves a
// line's speaker_id by position.
package sqlexport
