package sqlexport

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/fileutil"
	"dialogedit/internal/logging"
	"dialogedit/internal/textutil"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is recorded in export_meta. Bump this when the schema changes.
const schemaVersion = 1

// Options controls an export.
type Options struct {
	// Source is the document path recorded in export_meta.
	Source string
	Logger *slog.Logger
	// Now overrides the export timestamp.
	Now func() time.Time
}

// Result summarizes a finished export.
type Result struct {
	Path     string `json:"path"`
	Speakers int    `json:"speakers"`
	Lines    int    `json:"lines"`
}

// DefaultPath returns where the export of source goes: next to the source
// with a .db extension, or inside exportDir when one is configured.
func DefaultPath(source, exportDir string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if exportDir == "" {
		return filepath.Join(filepath.Dir(source), base+".db")
	}
	name := textutil.SanitizeFileName(base)
	if name == "" {
		name = "dialogue"
	}
	return filepath.Join(exportDir, name+".db")
}

// Export writes c to a fresh SQLite database at path in a single transaction.
func Export(ctx context.Context, c *dialogue.Collection, path string, opts Options) (*Result, error) {
	if c == nil {
		c = dialogue.New()
	}
	logger := logging.NewComponentLogger(opts.Logger, "sqlexport")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	if err := fileutil.CheckWritableDir(dir); err != nil {
		return nil, err
	}
	for _, stale := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("remove previous export: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("apply pragma: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin export tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	if err := insertSpeakers(ctx, tx, c.Speakers); err != nil {
		return nil, err
	}
	if err := insertLines(ctx, tx, c.Lines); err != nil {
		return nil, err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	meta := [][2]string{
		{"schema_version", strconv.Itoa(schemaVersion)},
		{"source", opts.Source},
		{"exported_at", now().UTC().Format(time.RFC3339)},
	}
	for _, kv := range meta {
		if _, err := tx.ExecContext(ctx, "INSERT INTO export_meta (key, value) VALUES (?, ?)", kv[0], kv[1]); err != nil {
			return nil, fmt.Errorf("insert export meta %s: %w", kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit export: %w", err)
	}

	result := &Result{Path: path, Speakers: len(c.Speakers), Lines: len(c.Lines)}
	logger.Info("exported dialogue",
		logging.String("database", path),
		logging.String(logging.FieldDocument, opts.Source),
		logging.Int("speakers", result.Speakers),
		logging.Int("lines", result.Lines))
	return result, nil
}

func insertSpeakers(ctx context.Context, tx *sql.Tx, speakers []dialogue.Speaker) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO speakers (
            position, id, name, color, red, green, blue, alpha, portrait,
            scale_x, scale_y, rect_x, rect_y, rect_w, rect_h
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare speaker insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range speakers {
		var red, green, blue, alpha sql.NullInt64
		if color, err := dialogue.ParseColor(s.Color); err == nil {
			r, g, b, a := color.RGBA()
			red = sql.NullInt64{Int64: int64(r), Valid: true}
			green = sql.NullInt64{Int64: int64(g), Valid: true}
			blue = sql.NullInt64{Int64: int64(b), Valid: true}
			alpha = sql.NullInt64{Int64: int64(a), Valid: true}
		}
		var rx, ry, rw, rh sql.NullInt64
		if s.TextureRect != nil {
			rx = sql.NullInt64{Int64: int64(s.TextureRect.X), Valid: true}
			ry = sql.NullInt64{Int64: int64(s.TextureRect.Y), Valid: true}
			rw = sql.NullInt64{Int64: int64(s.TextureRect.Width), Valid: true}
			rh = sql.NullInt64{Int64: int64(s.TextureRect.Height), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			i, s.ID, s.Name, s.Color, red, green, blue, alpha, s.Portrait,
			s.Scale.X, s.Scale.Y, rx, ry, rw, rh,
		); err != nil {
			return fmt.Errorf("insert speaker %d: %w", i, err)
		}
	}
	return nil
}

func insertLines(ctx context.Context, tx *sql.Tx, lines []dialogue.Line) error {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO lines (position, speaker_id, text) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare line insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range lines {
		if _, err := stmt.ExecContext(ctx, i, l.SpeakerID, l.Text); err != nil {
			return fmt.Errorf("insert line %d: %w", i, err)
		}
	}
	return nil
}
