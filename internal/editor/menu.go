package editor

import (
	"errors"
	"fmt"
	"strings"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/logging"
	"dialogedit/internal/render"
)

// dispatch runs one menu choice. It reports true when the session should end.
func (s *Session) dispatch(choice string) (bool, error) {
	switch strings.TrimSpace(choice) {
	case "1":
		s.newCollection()
	case "2":
		return false, s.loadPrompt()
	case "3":
		return false, s.addSpeaker()
	case "4":
		return false, s.addLine()
	case "5":
		render.WriteCollection(s.out, s.doc, s.opts.Render)
	case "6":
		s.save()
	case "7":
		return false, s.saveAs()
	case "8":
		s.exit()
		return true, nil
	default:
		fmt.Fprintln(s.out, "Invalid choice. Please try again.")
	}
	return false, nil
}

func (s *Session) newCollection() {
	s.doc = dialogue.New()
	s.forget()
	s.dirty = false
	fmt.Fprintln(s.out, "New dialogue collection created.")
}

func (s *Session) loadPrompt() error {
	path, err := s.readLine("Enter the JSON file path to load: ")
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)

	doc, err := dialogue.Load(path)
	if err != nil {
		s.reportLoadError(path, err)
		return nil
	}
	if err := s.adopt(path); err != nil {
		fmt.Fprintf(s.out, "Error loading file: %v\n", err)
		return nil
	}
	s.doc = doc
	s.dirty = false
	s.logger.Info("loaded dialogue",
		logging.String(logging.FieldDocument, path),
		logging.Int("speakers", len(doc.Speakers)),
		logging.Int("lines", len(doc.Lines)))
	fmt.Fprintf(s.out, "\nSuccessfully loaded dialogue data from '%s'\n", path)
	return nil
}

func (s *Session) reportLoadError(path string, err error) {
	var decodeErr *dialogue.DecodeError
	switch {
	case errors.Is(err, dialogue.ErrNotFound):
		fmt.Fprintf(s.out, "Error: File '%s' not found.\n", path)
	case errors.As(err, &decodeErr):
		fmt.Fprintf(s.out, "Error decoding JSON from '%s': %v\n", path, decodeErr.Err)
		if decodeErr.Line > 0 {
			fmt.Fprintf(s.out, "  at line %d, column %d\n", decodeErr.Line, decodeErr.Column)
		}
	default:
		fmt.Fprintf(s.out, "Error loading file: %v\n", err)
	}
	s.logger.Debug("load failed", logging.String(logging.FieldDocument, path), logging.Error(err))
}

func (s *Session) addSpeaker() error {
	fmt.Fprintln(s.out, "\n--- Add New Speaker ---")
	id, err := s.promptID("Enter Speaker ID (integer): ")
	if err != nil {
		return err
	}
	name, err := s.promptText("Enter Speaker Name: ")
	if err != nil {
		return err
	}
	color, err := s.promptColor()
	if err != nil {
		return err
	}
	portrait, err := s.readLine("Enter Portrait Path (e.g., res/hero.png, leave empty if none): ")
	if err != nil {
		return err
	}
	scale, err := s.promptScale()
	if err != nil {
		return err
	}
	rect, err := s.promptRect()
	if err != nil {
		return err
	}

	if existing, ok := s.doc.Speaker(id); ok {
		fmt.Fprintf(s.out, "Warning: speaker ID %d is already used by %q.\n", id, existing.Name)
	}
	speaker := dialogue.Speaker{
		ID:          id,
		Name:        name,
		Color:       color,
		Portrait:    strings.TrimSpace(portrait),
		Scale:       scale,
		TextureRect: &rect,
	}
	fmt.Fprintln(s.out, "Speaker created:")
	render.WriteSpeaker(s.out, speaker, s.opts.Render)
	s.doc.AddSpeaker(speaker)
	s.dirty = true
	s.logger.Debug("speaker added", logging.Int("speaker_id", id), logging.String("name", name))
	return nil
}

func (s *Session) addLine() error {
	fmt.Fprintln(s.out, "\n--- Add New Dialogue Line ---")
	id, err := s.promptID("Enter Speaker ID for this line (integer): ")
	if err != nil {
		return err
	}
	text, err := s.promptText("Enter Dialogue Text: ")
	if err != nil {
		return err
	}

	if _, ok := s.doc.Speaker(id); !ok {
		fmt.Fprintf(s.out, "Warning: no speaker with ID %d exists yet.\n", id)
	}
	line := dialogue.Line{SpeakerID: id, Text: text}
	fmt.Fprintln(s.out, "Line created:")
	render.WriteLine(s.out, line)
	s.doc.AddLine(line)
	s.dirty = true
	s.logger.Debug("line added", logging.Int("speaker_id", id))
	return nil
}

func (s *Session) save() {
	if s.filename == "" {
		fmt.Fprintln(s.out, "No file loaded or specified. Please use 'Save Dialogue Data As...' first.")
		return
	}
	s.write(s.filename)
}

// saveAs makes the entered name current before writing, so a failed write
// still leaves it as the target for the next plain save.
func (s *Session) saveAs() error {
	path, err := s.readLine("Enter filename to save (e.g., my_dialogue.json): ")
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		fmt.Fprintln(s.out, "No filename entered.")
		return nil
	}
	if err := s.adopt(path); err != nil {
		fmt.Fprintf(s.out, "Error saving file: %v\n", err)
		return nil
	}
	s.write(path)
	return nil
}

func (s *Session) write(path string) {
	err := dialogue.Save(path, s.doc, dialogue.SaveOptions{Backup: s.opts.Backup, Logger: s.logger})
	if err != nil {
		logging.ErrorWithContext(s.logger, "save failed", "save_failed",
			logging.String(logging.FieldDocument, path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the directory exists and is writable"))
		fmt.Fprintf(s.out, "Error saving file: %v\n", err)
		return
	}
	s.dirty = false
	fmt.Fprintf(s.out, "\nSuccessfully saved dialogue data to '%s'\n", path)
}

func (s *Session) exit() {
	if s.dirty {
		fmt.Fprintln(s.out, "You have unsaved changes.")
		logging.WarnWithContext(s.logger, "exiting with unsaved changes", "unsaved_changes",
			logging.String(logging.FieldDocument, s.filename),
			logging.String(logging.FieldErrorHint, "save before exiting to keep edits"),
			logging.String(logging.FieldImpact, "in-memory edits were discarded"))
	}
	fmt.Fprintln(s.out, "Exiting program. Goodbye!")
}
