package dialogue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"dialogedit/internal/fileutil"
	"dialogedit/internal/logging"
)

// ErrNotFound reports a dialogue file that does not exist.
var ErrNotFound = errors.New("dialogue file not found")

// DecodeError describes a document that is not valid dialogue JSON.
type DecodeError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *DecodeError) Error() string {
	location := e.Path
	if location == "" {
		location = "input"
	}
	if e.Line > 0 {
		return fmt.Sprintf("decode %s (line %d, column %d): %v", location, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", location, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// SaveOptions controls how Save writes the document.
type SaveOptions struct {
	// Backup copies an existing file to <path>.bak before replacing it.
	Backup bool
	Logger *slog.Logger
}

// Encode writes c as two-space indented JSON. Non-ASCII text is written
// verbatim and HTML characters are not escaped.
func Encode(w io.Writer, c *Collection) error {
	if c == nil {
		c = New()
	}
	out := Collection{
		Speakers: append([]Speaker(nil), c.Speakers...),
		Lines:    c.Lines,
	}
	out.Normalize()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("encode dialogue: %w", err)
	}
	return nil
}

// Decode reads a document from r. The returned collection is normalized.
func Decode(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dialogue: %w", err)
	}
	return decodeBytes(data, "")
}

func decodeBytes(data []byte, path string) (*Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		decodeErr := &DecodeError{Path: path, Err: err}
		// Syntax offsets are absolute and count the offending byte. Other
		// errors may come from a custom unmarshaler with offsets relative to a
		// nested value, so they point at the start of the entry that failed.
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			decodeErr.Line, decodeErr.Column = lineColumn(data, syntaxErr.Offset-1)
		} else if offset, ok := failingEntryOffset(data); ok {
			decodeErr.Line, decodeErr.Column = lineColumn(data, offset)
		}
		return nil, decodeErr
	}
	c.Normalize()
	return &c, nil
}

// failingEntryOffset re-decodes the speakers and lines arrays one entry at a
// time and returns the offset of the first value that does not decode.
func failingEntryOffset(data []byte) (int64, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return 0, false
	}
	if tok != json.Delim('{') {
		return valueStart(data, 0), true
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return 0, false
		}
		var decodeEntry func(json.RawMessage) error
		switch keyTok {
		case "speakers":
			decodeEntry = func(raw json.RawMessage) error { return json.Unmarshal(raw, new(Speaker)) }
		case "lines":
			decodeEntry = func(raw json.RawMessage) error { return json.Unmarshal(raw, new(Line)) }
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return 0, false
			}
			continue
		}

		start := valueStart(data, dec.InputOffset())
		tok, err := dec.Token()
		if err != nil {
			return 0, false
		}
		if tok == nil {
			continue
		}
		if tok != json.Delim('[') {
			return start, true
		}
		for dec.More() {
			entryStart := valueStart(data, dec.InputOffset())
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return 0, false
			}
			if err := decodeEntry(raw); err != nil {
				return entryStart, true
			}
		}
		if _, err := dec.Token(); err != nil {
			return 0, false
		}
	}
	return 0, false
}

// valueStart skips whitespace and separators from offset to the next value.
func valueStart(data []byte, offset int64) int64 {
	for offset < int64(len(data)) {
		switch data[offset] {
		case ' ', '\t', '\r', '\n', ':', ',':
			offset++
		default:
			return offset
		}
	}
	return offset
}

// lineColumn converts a byte offset into 1-based line and column numbers.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset <= 0 {
		return 1, 1
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte{'\n'}) + 1
	column := int(offset)
	if idx := bytes.LastIndexByte(prefix, '\n'); idx >= 0 {
		column = int(offset) - idx - 1
	}
	return line, column + 1
}

// Load reads and decodes the document at path.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read dialogue file: %w", err)
	}
	return decodeBytes(data, path)
}

// Save writes c to path atomically, creating the parent directory if needed.
func Save(path string, c *Collection, opts SaveOptions) error {
	logger := logging.NewComponentLogger(opts.Logger, "dialogue")
	if c == nil {
		c = New()
	}

	var buf bytes.Buffer
	if err := Encode(&buf, c); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dialogue directory: %w", err)
	}
	if err := fileutil.CheckWritableDir(dir); err != nil {
		return err
	}

	if opts.Backup {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			backupPath := path + ".bak"
			if err := fileutil.CopyFile(path, backupPath); err != nil {
				return fmt.Errorf("write backup %s: %w", backupPath, err)
			}
			logger.Debug("wrote backup", logging.String("backup", backupPath))
		}
	}

	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save dialogue: %w", err)
	}

	logger.Info("saved dialogue",
		logging.String(logging.FieldDocument, path),
		logging.Int("speakers", len(c.Speakers)),
		logging.Int("lines", len(c.Lines)))
	return nil
}
