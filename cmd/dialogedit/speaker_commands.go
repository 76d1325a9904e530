package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dialogedit/internal/dialogue"
	"dialogedit/internal/render"
	"dialogedit/internal/textutil"
)

func newSpeakerCommand(ctx *commandContext) *cobra.Command {
	speakerCmd := &cobra.Command{
		Use:   "speaker",
		Short: "Add and list speakers",
	}
	speakerCmd.AddCommand(newSpeakerAddCommand(ctx))
	speakerCmd.AddCommand(newSpeakerListCommand(ctx))
	return speakerCmd
}

type speakerFlags struct {
	id       string
	name     string
	color    string
	portrait string
	scale    string
	rect     string
}

// build validates the flags into a speaker. An empty id takes the next free one.
func (f speakerFlags) build(coll *dialogue.Collection, defaultScale dialogue.Scale) (dialogue.Speaker, error) {
	id := coll.NextSpeakerID()
	if strings.TrimSpace(f.id) != "" {
		parsed, err := dialogue.ParseID(f.id)
		if err != nil {
			return dialogue.Speaker{}, fmt.Errorf("--id: %w", err)
		}
		id = parsed
	}
	if existing, ok := coll.Speaker(id); ok {
		return dialogue.Speaker{}, fmt.Errorf("speaker id %d is already used by %q", id, existing.Name)
	}

	color, err := dialogue.NormalizeColor(f.color)
	if err != nil {
		return dialogue.Speaker{}, fmt.Errorf("--color: %w", err)
	}

	scale := defaultScale
	if strings.TrimSpace(f.scale) != "" {
		scale, err = dialogue.ParseScalePair(f.scale)
		if err != nil {
			return dialogue.Speaker{}, fmt.Errorf("--scale: %w", err)
		}
	}

	rect, err := dialogue.ParseRect(f.rect)
	if err != nil {
		return dialogue.Speaker{}, fmt.Errorf("--rect: %w", err)
	}

	return dialogue.Speaker{
		ID:          id,
		Name:        textutil.NormalizeText(f.name),
		Color:       color,
		Portrait:    strings.TrimSpace(f.portrait),
		Scale:       scale,
		TextureRect: &rect,
	}, nil
}

func newSpeakerAddCommand(ctx *commandContext) *cobra.Command {
	var flags speakerFlags

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Append a speaker to a dialogue file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			defaultScale := dialogue.Scale{X: cfg.Editor.DefaultScaleX, Y: cfg.Editor.DefaultScaleY}

			var added dialogue.Speaker
			_, _, err := updateDocument(cmd, ctx, args[0], func(coll *dialogue.Collection) error {
				speaker, err := flags.build(coll, defaultScale)
				if err != nil {
					return err
				}
				coll.AddSpeaker(speaker)
				added = speaker
				return nil
			})
			if err != nil {
				return err
			}

			if ctx.jsonMode() {
				return writeJSON(cmd, added)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Speaker created:")
			render.WriteSpeaker(out, added, ctx.renderOptions(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.id, "id", "", "Speaker ID (defaults to the next unused ID)")
	cmd.Flags().StringVar(&flags.name, "name", "", "Speaker name")
	cmd.Flags().StringVar(&flags.color, "color", "", "Name font color (#RRGGBB or #RRGGBBAA)")
	cmd.Flags().StringVar(&flags.portrait, "portrait", "", "Portrait texture path")
	cmd.Flags().StringVar(&flags.scale, "scale", "", "Portrait scaling factor as x,y")
	cmd.Flags().StringVar(&flags.rect, "rect", "", "Texture rect as x,y,width,height")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("color")
	_ = cmd.MarkFlagRequired("rect")
	return cmd
}

func newSpeakerListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <file>",
		Short: "List the speakers in a dialogue file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, coll, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			if ctx.jsonMode() {
				return writeJSON(cmd, coll.Speakers)
			}
			out := cmd.OutOrStdout()
			if len(coll.Speakers) == 0 {
				fmt.Fprintln(out, "No speakers added yet.")
				return nil
			}
			fmt.Fprintln(out, render.SpeakersTable(coll, ctx.renderOptions(out)))
			return nil
		},
	}
}
