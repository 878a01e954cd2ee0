package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-matcher/internal/client"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Analyze a resume against a job description",
	Long:  "Submit a resume (document or text) with a job title and description, then print the score and the detail link.",
	RunE:  runSubmit,
}

var (
	submitTitle           string
	submitCompany         string
	submitDescription     string
	submitDescriptionFile string
	submitResumeFile      string
	submitResumeText      string
)

func init() {
	submitCmd.Flags().StringVarP(&submitTitle, "title", "t", "", "Job title")
	submitCmd.Flags().StringVarP(&submitCompany, "company", "c", "", "Company name")
	submitCmd.Flags().StringVarP(&submitDescription, "description", "d", "", "Job description text")
	submitCmd.Flags().StringVar(&submitDescriptionFile, "description-file", "", "Path to a file holding the job description")
	submitCmd.Flags().StringVarP(&submitResumeFile, "resume", "r", "", "Path to a PDF or Word resume")
	submitCmd.Flags().StringVar(&submitResumeText, "resume-text", "", "Resume as plain text")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	if submitResumeFile != "" && submitResumeText != "" {
		return fmt.Errorf("cannot use --resume with --resume-text")
	}

	form := &client.Form{
		Mode:           client.ModeText,
		JobTitle:       submitTitle,
		Company:        submitCompany,
		JobDescription: submitDescription,
		ResumeText:     submitResumeText,
	}
	if submitDescriptionFile != "" {
		content, err := os.ReadFile(submitDescriptionFile)
		if err != nil {
			return fmt.Errorf("failed to read description file: %w", err)
		}
		form.JobDescription = string(content)
	}
	if submitResumeFile != "" {
		form.Mode = client.ModeDocument
		data, err := os.ReadFile(submitResumeFile)
		if err != nil {
			return fmt.Errorf("failed to read resume file: %w", err)
		}
		if err := form.AttachDocument(filepath.Base(submitResumeFile), data); err != nil {
			return err
		}
	}

	c := newClient()
	rec, err := c.Submit(cmd.Context(), form)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSummary(out, rec)
	fmt.Fprintf(out, "View: %s\n", c.DetailURL(rec.ID))
	return nil
}
