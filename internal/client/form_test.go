package client

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-matcher/internal/llm"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

func TestAttachDocumentSniffsPDF(t *testing.T) {
	var f Form
	require.NoError(t, f.AttachDocument("resume.bin", pdfBytes))
	require.NotNil(t, f.Document)
	assert.Equal(t, llm.MimePDF, f.Document.MimeType)
	assert.Equal(t, "resume.bin", f.Document.Name)
}

func TestAttachDocumentFallsBackToExtension(t *testing.T) {
	var f Form
	require.NoError(t, f.AttachDocument("Resume.DOCX", []byte("not really a zip")))
	assert.Equal(t, llm.MimeDOCX, f.Document.MimeType)

	require.NoError(t, f.AttachDocument("cv.doc", []byte("plain bytes")))
	assert.Equal(t, llm.MimeDOC, f.Document.MimeType)
}

func TestAttachDocumentRejectsUnsupportedAndClears(t *testing.T) {
	var f Form
	require.NoError(t, f.AttachDocument("resume.pdf", pdfBytes))

	err := f.AttachDocument("notes.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedDocument)
	assert.Equal(t, "Please upload a PDF or Word document (.pdf, .doc, .docx)", err.Error())
	assert.Nil(t, f.Document)
}

func TestAttachDocumentRejectsImageNamedPDF(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	var f Form
	assert.ErrorIs(t, f.AttachDocument("resume.pdf", png), ErrUnsupportedDocument)
	assert.Nil(t, f.Document)
}

func TestAttachDocumentSizeLimit(t *testing.T) {
	var f Form
	atLimit := append(append([]byte{}, pdfBytes...), bytes.Repeat([]byte{' '}, MaxDocumentBytes-len(pdfBytes))...)
	require.NoError(t, f.AttachDocument("resume.pdf", atLimit))

	overLimit := append(atLimit, ' ')
	err := f.AttachDocument("resume.pdf", overLimit)
	assert.ErrorIs(t, err, ErrDocumentTooLarge)
	assert.Equal(t, "File size must be less than 10MB", err.Error())
	assert.Nil(t, f.Document)
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name     string
		form     Form
		loggedIn bool
		want     error
	}{
		{name: "title first", form: Form{Mode: ModeText}, loggedIn: false, want: ErrJobTitleRequired},
		{name: "description", form: Form{Mode: ModeText, JobTitle: "SRE"}, want: ErrJobDescriptionRequired},
		{name: "document missing", form: Form{Mode: ModeDocument, JobTitle: "SRE", JobDescription: "k8s"}, want: ErrDocumentRequired},
		{name: "text blank", form: Form{Mode: ModeText, JobTitle: "SRE", JobDescription: "k8s", ResumeText: "   "}, want: ErrResumeTextRequired},
		{name: "session last", form: Form{Mode: ModeText, JobTitle: "SRE", JobDescription: "k8s", ResumeText: "cv"}, loggedIn: false, want: ErrNotLoggedIn},
		{name: "valid", form: Form{Mode: ModeText, JobTitle: "SRE", JobDescription: "k8s", ResumeText: "cv"}, loggedIn: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate(tt.loggedIn)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateOnlyChecksActiveMode(t *testing.T) {
	f := Form{JobTitle: "SRE", JobDescription: "k8s", ResumeText: "kept while in document mode"}
	require.NoError(t, f.AttachDocument("resume.pdf", pdfBytes))

	f.Mode = ModeText
	f.ResumeText = ""
	assert.ErrorIs(t, f.Validate(true), ErrResumeTextRequired)
	assert.NotNil(t, f.Document)

	f.Mode = ModeDocument
	assert.NoError(t, f.Validate(true))
}
