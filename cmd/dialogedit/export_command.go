package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"dialogedit/internal/config"
	"dialogedit/internal/fileutil"
	"dialogedit/internal/sqlexport"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export dialogue files to other formats",
	}
	exportCmd.AddCommand(newExportSQLiteCommand(ctx))
	return exportCmd
}

func newExportSQLiteCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "sqlite <file>",
		Short: "Write a dialogue file to a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, coll, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if path == stdinDocument && strings.TrimSpace(outPath) == "" {
				return errors.New("--out is required when reading from standard input")
			}
			target := sqlexport.DefaultPath(path, ctx.configValue().Paths.ExportDir)
			if strings.TrimSpace(outPath) != "" {
				target, err = config.ExpandPath(strings.TrimSpace(outPath))
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}

			if path != stdinDocument {
				same, err := fileutil.SameFile(path, target)
				if err != nil {
					return fmt.Errorf("compare export target: %w", err)
				}
				if same {
					return fmt.Errorf("export target %s is the source document; pass --out with a different path", target)
				}
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			result, err := sqlexport.Export(signalCtx, coll, target, sqlexport.Options{
				Source: path,
				Logger: logger,
			})
			if err != nil {
				return err
			}

			if ctx.jsonMode() {
				return writeJSON(cmd, result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d speakers and %d lines to %s\n", result.Speakers, result.Lines, result.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Database path (default: next to the source, or in paths.export_dir)")
	return cmd
}
