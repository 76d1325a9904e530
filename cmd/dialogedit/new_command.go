package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dialogedit/internal/dialogue"
)

func newNewCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create an empty dialogue collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := expandDocumentPath(args[0])
			if err != nil {
				return err
			}
			if !overwrite {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("dialogue file already exists at %s (use --overwrite to replace it)", path)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check dialogue path: %w", err)
				}
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if err := dialogue.Save(path, dialogue.New(), ctx.saveOptions(logger)); err != nil {
				return err
			}

			if ctx.jsonMode() {
				return writeJSON(cmd, map[string]any{"path": path, "speakers": 0, "lines": 0})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created empty dialogue collection at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}
