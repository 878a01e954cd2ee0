package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/match.txt
var matchPrompt string

const (
	jobDescriptionPlaceholder = "{{JOB_DESCRIPTION}}"
	resumeHeading             = "## Candidate's Resume:"
)

// BuildPrompt renders the instruction block for a job description. A text resume is
// appended under its own heading; a document resume travels as a separate binary part.
func BuildPrompt(resume Resume, jobDescription string) string {
	prompt := strings.Replace(matchPrompt, jobDescriptionPlaceholder, jobDescription, 1)
	if text, ok := resume.(TextResume); ok {
		var b strings.Builder
		b.WriteString(strings.TrimRight(prompt, "\n"))
		b.WriteString("\n\n")
		b.WriteString(resumeHeading)
		b.WriteString("\n")
		b.WriteString(text.Text)
		return b.String()
	}
	return prompt
}

// BuildRequest assembles the model request for a resume and job description.
func BuildRequest(resume Resume, jobDescription string) Request {
	req := Request{
		Prompt: BuildPrompt(resume, jobDescription),
		Schema: OutputSchema,
	}
	if doc, ok := resume.(DocumentResume); ok {
		req.Attachment = &Attachment{Data: doc.Data, MimeType: doc.MimeType}
	}
	return req
}
