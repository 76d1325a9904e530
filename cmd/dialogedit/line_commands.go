package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/render"
	"dialogedit/internal/textutil"
)

func newLineCommand(ctx *commandContext) *cobra.Command {
	lineCmd := &cobra.Command{
		Use:   "line",
		Short: "Add and list dialogue lines",
	}
	lineCmd.AddCommand(newLineAddCommand(ctx))
	lineCmd.AddCommand(newLineListCommand(ctx))
	return lineCmd
}

func newLineAddCommand(ctx *commandContext) *cobra.Command {
	var speakerFlag string
	var textFlag string

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Append a dialogue line to a dialogue file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := dialogue.ParseID(speakerFlag)
			if err != nil {
				return fmt.Errorf("--speaker: %w", err)
			}
			line := dialogue.Line{SpeakerID: id, Text: textutil.NormalizeText(textFlag)}

			known := true
			_, _, err = updateDocument(cmd, ctx, args[0], func(coll *dialogue.Collection) error {
				_, known = coll.Speaker(id)
				coll.AddLine(line)
				return nil
			})
			if err != nil {
				return err
			}
			if !known {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: no speaker with ID %d exists yet.\n", id)
			}

			if ctx.jsonMode() {
				return writeJSON(cmd, line)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Line created:")
			render.WriteLine(out, line)
			return nil
		},
	}

	cmd.Flags().StringVar(&speakerFlag, "speaker", "", "Speaker ID for the line")
	cmd.Flags().StringVar(&textFlag, "text", "", "Dialogue text")
	_ = cmd.MarkFlagRequired("speaker")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newLineListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List the lines in a dialogue file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, coll, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, coll.Lines)
			}
			out := cmd.OutOrStdout()
			if len(coll.Lines) == 0 {
				fmt.Fprintln(out, "No lines added yet.")
				return nil
			}
			fmt.Fprintln(out, render.LinesTable(coll, ctx.renderOptions(out)))
			return nil
		},
	}
}
