package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/editor"
	"dialogedit/internal/logging"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the interactive menu editor",
		Long: "Open the interactive menu editor. When a file is given it is loaded " +
			"(or created on first save) and becomes the current document.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, ctx, firstArg(args))
		},
	}
}

func runEditor(cmd *cobra.Command, ctx *commandContext, arg string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	session := editor.NewSession(cmd.InOrStdin(), out, logger, editor.Options{
		Backup:       cfg.Editor.BackupOnSave,
		LockFiles:    cfg.Editor.LockFiles,
		RequireLock:  cfg.Editor.RequireLock,
		DefaultScale: dialogue.Scale{X: cfg.Editor.DefaultScaleX, Y: cfg.Editor.DefaultScaleY},
		Render:       ctx.renderOptions(out),
	})
	defer func() {
		if err := session.Close(); err != nil {
			logger.Debug("close session", logging.Error(err))
		}
	}()

	if arg != "" {
		path, err := expandDocumentPath(arg)
		if err != nil {
			return err
		}
		if err := session.Open(path); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
	}

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}
	logger.Debug("editor session started", logging.String(logging.FieldDocument, session.Filename()))
	return session.Run(runCtx)
}
