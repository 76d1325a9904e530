package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/logging"
)

// stdinDocument is the argument that reads a document from standard input.
const stdinDocument = "-"

// loadDocument loads the document named by arg, or decodes stdin for "-".
func loadDocument(cmd *cobra.Command, arg string) (string, *dialogue.Collection, error) {
	if arg == stdinDocument {
		coll, err := dialogue.Decode(cmd.InOrStdin())
		if err != nil {
			return arg, nil, err
		}
		return arg, coll, nil
	}
	path, err := expandDocumentPath(arg)
	if err != nil {
		return "", nil, err
	}
	coll, err := dialogue.Load(path)
	if err != nil {
		if errors.Is(err, dialogue.ErrNotFound) {
			return path, nil, missingDocument(path)
		}
		return path, nil, err
	}
	return path, coll, nil
}

func missingDocument(path string) error {
	return fmt.Errorf("%w: %s (create it with `dialogedit new %s`)", dialogue.ErrNotFound, path, path)
}

// updateDocument loads the document under its session lock, applies fn, and
// saves the result.
func updateDocument(cmd *cobra.Command, ctx *commandContext, arg string, fn func(*dialogue.Collection) error) (string, *dialogue.Collection, error) {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return "", nil, err
	}
	if arg == stdinDocument {
		return "", nil, errors.New("standard input cannot be updated; pass a file path")
	}
	path, err := expandDocumentPath(arg)
	if err != nil {
		return "", nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil, missingDocument(path)
		}
		return path, nil, fmt.Errorf("inspect %s: %w", path, err)
	}

	lock, err := acquireDocumentLock(cmd, ctx, logger, path)
	if err != nil {
		return path, nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Debug("release lock", logging.Error(err))
		}
	}()

	_, coll, err := loadDocument(cmd, arg)
	if err != nil {
		return path, nil, err
	}
	if err := fn(coll); err != nil {
		return path, nil, err
	}
	if err := dialogue.Save(path, coll, ctx.saveOptions(logger)); err != nil {
		return path, nil, err
	}
	return path, coll, nil
}

// acquireDocumentLock returns nil when locking is disabled or, unless it is
// required, when another session holds the lock.
func acquireDocumentLock(cmd *cobra.Command, ctx *commandContext, logger *slog.Logger, path string) (*dialogue.Lock, error) {
	cfg := ctx.configValue()
	if !cfg.Editor.LockFiles && !cfg.Editor.RequireLock {
		return nil, nil
	}
	lock, err := dialogue.AcquireLock(path)
	if err == nil {
		return lock, nil
	}
	if cfg.Editor.RequireLock {
		return nil, err
	}
	logging.WarnWithContext(logger, "document lock unavailable", "lock_unavailable",
		logging.String(logging.FieldDocument, path),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "close other editors working on this file"),
		logging.String(logging.FieldImpact, "concurrent edits may overwrite each other"))
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	return nil, nil
}
