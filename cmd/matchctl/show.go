package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"resume-matcher/internal/analyses"
	"resume-matcher/internal/llm"
)

var showCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Show one analysis in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your analyses, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	rec, err := newClient().Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSummary(out, rec)
	fmt.Fprintf(out, "Created: %s\n\n", formatMillis(rec.CreatedAt))
	fmt.Fprintf(out, "Feedback:\n%s\n", rec.FeedbackSummary)
	printNumbered(out, "Interview questions", rec.InterviewQuestions)
	printNumbered(out, "Application questions", rec.ApplicationQuestions)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	recs, err := newClient().List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "No analyses yet.")
		return nil
	}
	for _, rec := range recs {
		fmt.Fprintf(out, "%s  %3d  %-9s  %s  %s\n",
			rec.ID, rec.Score, llm.Band(rec.Score), formatMillis(rec.CreatedAt), heading(rec))
	}
	return nil
}

func printSummary(out io.Writer, rec analyses.Record) {
	fmt.Fprintf(out, "%s\n", heading(rec))
	fmt.Fprintf(out, "Score: %d/100 (%s)\n", rec.Score, llm.Band(rec.Score))
}

func printNumbered(out io.Writer, title string, items []string) {
	fmt.Fprintf(out, "\n%s:\n", title)
	for i, item := range items {
		fmt.Fprintf(out, "  %d. %s\n", i+1, item)
	}
}

func heading(rec analyses.Record) string {
	if strings.TrimSpace(rec.Company) == "" {
		return rec.JobTitle
	}
	return rec.JobTitle + " at " + rec.Company
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}
