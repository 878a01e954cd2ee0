package analyses

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"resume-matcher/internal/llm"
)

// MaxDocumentBytes bounds a decoded resume document.
const MaxDocumentBytes = 10 << 20

const (
	msgUserIDRequired     = "User ID is required"
	msgJobTitleRequired   = "Job title is required"
	msgJobDescRequired    = "Job description is required"
	msgResumeRequired     = "Resume is required (either text or file)"
	msgResumeBothForms    = "Provide either resume text or a resume file, not both"
	msgMimeTypeRequired   = "Resume file type is required"
	msgMimeTypeInvalid    = "Invalid file type. Please upload a PDF or Word document."
	msgResumeNotBase64    = "Resume file is not valid base64"
	msgResumeFileTooLarge = "Resume file must be 10MB or smaller"
)

type requiredFields struct {
	UserID         string `validate:"required"`
	JobTitle       string `validate:"required"`
	JobDescription string `validate:"required"`
}

type documentFields struct {
	MimeType string `validate:"required,resume_mime"`
}

var (
	validate = newValidator()

	requiredMessages = map[string]*ValidationError{
		"UserID":         invalid("userId", msgUserIDRequired),
		"JobTitle":       invalid("jobTitle", msgJobTitleRequired),
		"JobDescription": invalid("jobDescription", msgJobDescRequired),
	}
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("resume_mime", func(fl validator.FieldLevel) bool {
		return llm.SupportedMimeType(fl.Field().String())
	})
	return v
}

// Validate checks a raw submission and returns the trimmed, typed input. The first
// failing rule wins; nothing is called before validation succeeds.
func Validate(req SubmitRequest) (Input, error) {
	fields := requiredFields{
		UserID:         strings.TrimSpace(req.UserID),
		JobTitle:       strings.TrimSpace(req.JobTitle),
		JobDescription: strings.TrimSpace(req.JobDescription),
	}
	if err := validate.Struct(fields); err != nil {
		return Input{}, firstRequiredError(err)
	}

	text := strings.TrimSpace(req.ResumeText)
	encoded := strings.TrimSpace(firstNonEmpty(req.ResumeBinaryBase64, req.ResumeBase64))
	mimeType := strings.TrimSpace(firstNonEmpty(req.ResumeMimeType, req.ResumeFileType))

	switch {
	case text == "" && encoded == "":
		return Input{}, invalid("resume", msgResumeRequired)
	case text != "" && encoded != "":
		return Input{}, invalid("resume", msgResumeBothForms)
	}
	if mimeType != "" && !llm.SupportedMimeType(mimeType) {
		return Input{}, invalid("resumeMimeType", msgMimeTypeInvalid)
	}

	in := Input{
		UserID:         fields.UserID,
		JobTitle:       fields.JobTitle,
		Company:        strings.TrimSpace(req.Company),
		JobDescription: fields.JobDescription,
	}
	if text != "" {
		in.Resume = llm.TextResume{Text: text}
		return in, nil
	}

	if err := validate.Struct(documentFields{MimeType: mimeType}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
			return Input{}, invalid("resumeMimeType", msgMimeTypeRequired)
		}
		return Input{}, invalid("resumeMimeType", msgMimeTypeInvalid)
	}

	data, err := decodeDocument(encoded)
	if err != nil {
		return Input{}, invalid("resumeBinaryBase64", msgResumeNotBase64)
	}
	if len(data) == 0 {
		return Input{}, invalid("resume", msgResumeRequired)
	}
	if len(data) > MaxDocumentBytes {
		return Input{}, invalid("resumeBinaryBase64", msgResumeFileTooLarge)
	}
	in.Resume = llm.DocumentResume{Data: data, MimeType: mimeType}
	return in, nil
}

func firstRequiredError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if msg, ok := requiredMessages[fe.Field()]; ok {
				return msg
			}
		}
	}
	return invalid("", err.Error())
}

// decodeDocument accepts standard or unpadded base64, optionally as a data URL.
func decodeDocument(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:") {
		if idx := strings.Index(encoded, ";base64,"); idx >= 0 {
			encoded = encoded[idx+len(";base64,"):]
		}
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(encoded)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
