// Package gemini implements llm.Model on top of the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"resume-matcher/internal/llm"
	"resume-matcher/internal/shared/metrics"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// Model calls Gemini generateContent with a structured-output schema.
type Model struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// Options configures a Model.
type Options struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// BaseURL overrides the API endpoint; used by tests.
	BaseURL string
}

// New constructs a Gemini-backed Model.
func New(ctx context.Context, opts Options) (*Model, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	modelName := strings.TrimSpace(opts.Model)
	if modelName == "" {
		modelName = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Model{
		client:  client,
		model:   modelName,
		timeout: opts.Timeout,
	}, nil
}

// Name returns the configured model name.
func (m *Model) Name() string {
	return m.model
}

// Generate sends the prompt, and the attachment if any, and returns the response text.
func (m *Model) Generate(ctx context.Context, req llm.Request) (string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := m.client.Models.GenerateContent(ctx, m.model, buildContents(req), m.buildConfig(req))
	metrics.ObserveModelCallMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("gemini request timeout: %w", err)
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	logUsage(m.model, resp)

	return extractText(resp)
}

func buildContents(req llm.Request) []*genai.Content {
	parts := make([]*genai.Part, 0, 2)
	if req.Attachment != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Attachment.Data, req.Attachment.MimeType))
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func (m *Model) buildConfig(req llm.Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.2),
		ResponseMIMEType: "application/json",
	}
	if len(req.Schema) > 0 {
		cfg.ResponseSchema = toSchema(req.Schema)
	}
	// Flash models accept a zero thinking budget; pro models reject it.
	if strings.Contains(m.model, "flash") {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)}
	}
	return cfg
}

func toSchema(fields []llm.SchemaField) *genai.Schema {
	props := make(map[string]*genai.Schema, len(fields))
	for _, f := range fields {
		var s *genai.Schema
		switch f.Kind {
		case llm.KindNumber:
			s = &genai.Schema{Type: genai.TypeNumber}
		case llm.KindStringArray:
			s = &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
		default:
			s = &genai.Schema{Type: genai.TypeString}
		}
		s.Description = f.Description
		props[f.Name] = s
	}
	names := llm.FieldNames(fields)
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         names,
		PropertyOrdering: names,
	}
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini response has no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", fmt.Errorf("gemini response has no content (finish reason %s)", candidate.FinishReason)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String()), nil
}

func logUsage(model string, resp *genai.GenerateContentResponse) {
	if resp == nil || resp.UsageMetadata == nil {
		log.Printf("llm response model=%s", model)
		return
	}
	u := resp.UsageMetadata
	log.Printf("llm response model=%s prompt_tokens=%d candidates_tokens=%d total_tokens=%d",
		model, u.PromptTokenCount, u.CandidatesTokenCount, u.TotalTokenCount)
}

var _ llm.Model = (*Model)(nil)
