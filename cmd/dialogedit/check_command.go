package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"dialogedit/internal/dialogue"
)

type checkReport struct {
	Path     string           `json:"path"`
	Valid    bool             `json:"valid"`
	Errors   int              `json:"errors"`
	Warnings int              `json:"warnings"`
	Speakers int              `json:"speakers"`
	Lines    int              `json:"lines"`
	Issues   []dialogue.Issue `json:"issues"`
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Report problems the game would reject in a dialogue file",
		Long: "Check a dialogue file against the rules the game's loader applies. " +
			"Exits non-zero when any error-severity issue is found; warnings alone pass.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, coll, err := loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			report := buildCheckReport(path, coll)

			if ctx.jsonMode() {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				printCheckReport(cmd, report, coll.Stats())
			}

			if !report.Valid {
				return fmt.Errorf("%s: %d error(s) found", path, report.Errors)
			}
			return nil
		},
	}
}

func buildCheckReport(path string, coll *dialogue.Collection) checkReport {
	issues := dialogue.Check(coll)
	if issues == nil {
		issues = []dialogue.Issue{}
	}
	report := checkReport{
		Path:     path,
		Speakers: len(coll.Speakers),
		Lines:    len(coll.Lines),
		Issues:   issues,
	}
	for _, issue := range issues {
		if issue.Severity == dialogue.SeverityError {
			report.Errors++
		} else {
			report.Warnings++
		}
	}
	report.Valid = !dialogue.HasErrors(issues)
	return report
}

func printCheckReport(cmd *cobra.Command, report checkReport, stats dialogue.Stats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Document: %s\n", report.Path)
	fmt.Fprintf(out, "Speakers: %d, Lines: %d\n", stats.Speakers, stats.Lines)

	ids := make([]int, 0, len(stats.LinesBySpeaker))
	for id := range stats.LinesBySpeaker {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(out, "  speaker %d: %d line(s)\n", id, stats.LinesBySpeaker[id])
	}
	if stats.UnattributedLines > 0 {
		fmt.Fprintf(out, "  unattributed: %d line(s)\n", stats.UnattributedLines)
	}

	if len(report.Issues) == 0 {
		fmt.Fprintln(out, "No issues found")
		return
	}
	fmt.Fprintln(out)
	for _, issue := range report.Issues {
		fmt.Fprintln(out, issue.String())
	}
	fmt.Fprintf(out, "\n%d error(s), %d warning(s)\n", report.Errors, report.Warnings)
}
