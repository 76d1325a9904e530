package editor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/fileutil"
	"dialogedit/internal/logging"
	"dialogedit/internal/render"
)

// Options configures a Session.
type Options struct {
	// Backup keeps a <file>.bak copy of the previous document on save.
	Backup bool
	// LockFiles takes an advisory lock on the current document.
	LockFiles bool
	// RequireLock refuses to adopt a document whose lock is held elsewhere.
	RequireLock  bool
	DefaultScale dialogue.Scale
	Render       render.Options
}

// Session is one interactive editing session.
type Session struct {
	in     *bufio.Reader
	out    io.Writer
	logger *slog.Logger
	opts   Options

	doc      *dialogue.Collection
	filename string
	dirty    bool
	lock     *dialogue.Lock
}

// NewSession creates a session reading answers from in and writing prompts to
// out. It starts with an empty collection and no current file.
func NewSession(in io.Reader, out io.Writer, logger *slog.Logger, opts Options) *Session {
	if opts.DefaultScale.X <= 0 || opts.DefaultScale.Y <= 0 {
		opts.DefaultScale = dialogue.DefaultScale
	}
	return &Session{
		in:     bufio.NewReader(in),
		out:    out,
		logger: logging.NewComponentLogger(logger, "editor"),
		opts:   opts,
		doc:    dialogue.New(),
	}
}

// Collection returns the in-memory collection.
func (s *Session) Collection() *dialogue.Collection { return s.doc }

// Filename returns the current document path, or "" when none is set.
func (s *Session) Filename() string { return s.filename }

// Dirty reports whether the collection changed since it was last loaded or saved.
func (s *Session) Dirty() bool { return s.dirty }

// Open preloads path before the menu starts. A missing file is not an error:
// the session starts empty with path as its current file.
func (s *Session) Open(path string) error {
	doc, err := dialogue.Load(path)
	created := false
	switch {
	case err == nil:
	case errors.Is(err, dialogue.ErrNotFound):
		doc = dialogue.New()
		created = true
		fmt.Fprintf(s.out, "File '%s' does not exist yet; it will be created on save.\n", path)
	default:
		return err
	}
	if err := s.adopt(path); err != nil {
		return err
	}
	s.doc = doc
	s.dirty = false
	s.logger.Info("opened dialogue",
		logging.String(logging.FieldDocument, path),
		logging.Bool("new_file", created),
		logging.Int("speakers", len(doc.Speakers)),
		logging.Int("lines", len(doc.Lines)))
	return nil
}

// Close releases the document lock, if any.
func (s *Session) Close() error {
	err := s.lock.Release()
	s.lock = nil
	return err
}

// adopt makes path the current file, moving the session lock to it. A path
// naming the already locked document keeps the existing lock.
func (s *Session) adopt(path string) error {
	if s.lock != nil && s.isCurrent(path) {
		s.filename = path
		return nil
	}
	if s.opts.LockFiles || s.opts.RequireLock {
		lock, err := dialogue.AcquireLock(path)
		if err != nil {
			if s.opts.RequireLock {
				return err
			}
			logging.WarnWithContext(s.logger, "document lock unavailable", "lock_unavailable",
				logging.String(logging.FieldDocument, path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "close other editors working on this file"),
				logging.String(logging.FieldImpact, "concurrent edits may overwrite each other"))
			fmt.Fprintf(s.out, "Warning: %v\n", err)
		}
		if releaseErr := s.lock.Release(); releaseErr != nil {
			s.logger.Debug("release previous lock failed", logging.Error(releaseErr))
		}
		s.lock = lock
	}
	s.filename = path
	return nil
}

func (s *Session) isCurrent(path string) bool {
	if s.filename == "" {
		return false
	}
	same, err := fileutil.SameFile(path, s.filename)
	if err != nil {
		s.logger.Debug("compare document paths failed", logging.Error(err))
		return false
	}
	return same
}

// forget clears the current file and drops its lock.
func (s *Session) forget() {
	if err := s.Close(); err != nil {
		s.logger.Debug("release lock failed", logging.Error(err))
	}
	s.filename = ""
}

// Run shows the main menu until the user exits, input ends, or ctx is
// cancelled. End of input is a normal exit.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "--- C++ Dialogue System JSON Editor ---")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printMenu()
		choice, err := s.readLine("Enter your choice: ")
		if err != nil {
			return s.finish(err)
		}
		done, err := s.dispatch(choice)
		if err != nil {
			return s.finish(err)
		}
		if done {
			return nil
		}
	}
}

// finish maps end of input onto a normal exit.
func (s *Session) finish(err error) error {
	if !errors.Is(err, errEndOfInput) {
		return err
	}
	fmt.Fprintln(s.out)
	s.exit()
	return nil
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out, "\n--- Main Menu ---")
	fmt.Fprintln(s.out, "1. Create New Dialogue Collection")
	fmt.Fprintln(s.out, "2. Load Existing Dialogue Collection")
	fmt.Fprintln(s.out, "3. Add Speaker")
	fmt.Fprintln(s.out, "4. Add Dialogue Line")
	fmt.Fprintln(s.out, "5. View Current Dialogue Data")
	fmt.Fprintln(s.out, "6. Save Dialogue Data")
	fmt.Fprintln(s.out, "7. Save Dialogue Data As...")
	fmt.Fprintln(s.out, "8. Exit")
}
