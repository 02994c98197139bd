package assist

import (
	"context"

	"resume-studio/internal/document"
)

// Writer produces document text with a language model.
type Writer interface {
	GenerateSummary(ctx context.Context, doc document.Document, lang string) (string, error)
	ImproveDescription(ctx context.Context, description, role, lang string) (string, error)
	GenerateCoverLetter(ctx context.Context, doc document.Document, lang string) (string, error)
}

// Completer turns a prompt into model text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// PromptWriter implements Writer by rendering prompts for a Completer.
type PromptWriter struct {
	Completer Completer
}

// NewPromptWriter constructs a PromptWriter.
func NewPromptWriter(c Completer) *PromptWriter {
	return &PromptWriter{Completer: c}
}

func (w *PromptWriter) GenerateSummary(ctx context.Context, doc document.Document, lang string) (string, error) {
	prompt, err := summaryPrompt(doc, lang)
	if err != nil {
		return "", err
	}
	return w.Completer.Complete(ctx, prompt)
}

func (w *PromptWriter) ImproveDescription(ctx context.Context, description, role, lang string) (string, error) {
	prompt, err := descriptionPrompt(description, role, lang)
	if err != nil {
		return "", err
	}
	return w.Completer.Complete(ctx, prompt)
}

func (w *PromptWriter) GenerateCoverLetter(ctx context.Context, doc document.Document, lang string) (string, error) {
	prompt, err := coverLetterPrompt(doc, lang)
	if err != nil {
		return "", err
	}
	return w.Completer.Complete(ctx, prompt)
}

var _ Writer = (*PromptWriter)(nil)
