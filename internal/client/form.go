package client

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"resume-matcher/internal/llm"
)

// MaxDocumentBytes mirrors the server-side document limit.
const MaxDocumentBytes = 10 << 20

// Mode selects which resume buffer a Form submits.
type Mode int

const (
	ModeDocument Mode = iota
	ModeText
)

var (
	ErrUnsupportedDocument = errors.New("Please upload a PDF or Word document (.pdf, .doc, .docx)")
	ErrDocumentTooLarge    = errors.New("File size must be less than 10MB")

	ErrJobTitleRequired       = errors.New("Please enter a job title")
	ErrJobDescriptionRequired = errors.New("Please enter the job description/requirements")
	ErrDocumentRequired       = errors.New("Please upload your resume")
	ErrResumeTextRequired     = errors.New("Please enter your resume text")
	ErrNotLoggedIn            = errors.New("You must be logged in to analyze")
)

// Document is a resume file pending upload.
type Document struct {
	Name     string
	Data     []byte
	MimeType string
}

// Form holds the user's analysis input. Both resume buffers survive a mode switch;
// only the active one is validated and sent.
type Form struct {
	Mode           Mode
	JobTitle       string
	Company        string
	JobDescription string
	ResumeText     string
	Document       *Document
}

var extensionTypes = map[string]string{
	".pdf":  llm.MimePDF,
	".doc":  llm.MimeDOC,
	".docx": llm.MimeDOCX,
}

// containers that say nothing useful about a resume on their own.
var genericTypes = map[string]bool{
	"application/octet-stream":  true,
	"application/zip":           true,
	"application/x-ole-storage": true,
	"text/plain":                true,
}

// AttachDocument sets the pending document. On rejection the previous document is
// cleared and the reason is returned.
func (f *Form) AttachDocument(name string, data []byte) error {
	mimeType := detectMimeType(name, data)
	if mimeType == "" {
		f.Document = nil
		return ErrUnsupportedDocument
	}
	if len(data) > MaxDocumentBytes {
		f.Document = nil
		return ErrDocumentTooLarge
	}
	f.Document = &Document{Name: name, Data: data, MimeType: mimeType}
	return nil
}

// ClearDocument drops the pending document.
func (f *Form) ClearDocument() {
	f.Document = nil
}

// Validate checks the form in display order. loggedIn reports whether a session exists.
func (f *Form) Validate(loggedIn bool) error {
	if strings.TrimSpace(f.JobTitle) == "" {
		return ErrJobTitleRequired
	}
	if strings.TrimSpace(f.JobDescription) == "" {
		return ErrJobDescriptionRequired
	}
	switch f.Mode {
	case ModeDocument:
		if f.Document == nil || len(f.Document.Data) == 0 {
			return ErrDocumentRequired
		}
	case ModeText:
		if strings.TrimSpace(f.ResumeText) == "" {
			return ErrResumeTextRequired
		}
	}
	if !loggedIn {
		return ErrNotLoggedIn
	}
	return nil
}

func detectMimeType(name string, data []byte) string {
	detected := mimetype.Detect(data)
	for mt := detected; mt != nil; mt = mt.Parent() {
		if base := baseType(mt.String()); llm.SupportedMimeType(base) {
			return base
		}
	}
	if !genericTypes[baseType(detected.String())] {
		return ""
	}
	return extensionTypes[strings.ToLower(filepath.Ext(name))]
}

func baseType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.TrimSpace(base)
}
