package main

import (
	"github.com/spf13/cobra"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/render"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a dialogue collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, coll, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ctx.jsonMode() {
				return dialogue.Encode(out, coll)
			}
			opts := ctx.renderOptions(out)
			if asTable {
				opts.Table = true
			}
			render.WriteCollection(out, coll, opts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "Render speakers and lines as tables")
	return cmd
}
