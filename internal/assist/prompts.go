package assist

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"resume-studio/internal/document"
)

//go:embed prompts/*.tmpl
var promptFiles embed.FS

var prompts = template.Must(template.New("prompts").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(promptFiles, "prompts/*.tmpl"))

var proficiencyNames = [5]string{"Beginner", "Elementary", "Intermediate", "Advanced", "Native"}

func languageName(lang string) string {
	if lang == "fr" {
		return "French"
	}
	return "English"
}

func execute(name string, data any) (string, error) {
	var b strings.Builder
	if err := prompts.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return b.String(), nil
}

func summaryPrompt(doc document.Document, lang string) (string, error) {
	var recent *document.Experience
	if len(doc.Experiences) > 0 {
		recent = &doc.Experiences[0]
	}
	return execute("summary.tmpl", map[string]any{
		"Doc":      doc,
		"Language": languageName(lang),
		"Recent":   recent,
	})
}

func descriptionPrompt(description, role, lang string) (string, error) {
	return execute("description.tmpl", map[string]any{
		"Description": description,
		"Role":        role,
		"Language":    languageName(lang),
	})
}

func coverLetterPrompt(doc document.Document, lang string) (string, error) {
	recipient := strings.TrimSpace(doc.CoverLetter.RecipientName)
	if recipient == "" {
		recipient = "Hiring Manager"
	}
	languages := make([]string, 0, len(doc.Languages))
	for _, l := range doc.Languages {
		level := l.Proficiency
		if level < 1 {
			level = 1
		}
		if level > 5 {
			level = 5
		}
		languages = append(languages, fmt.Sprintf("%s (%s)", l.Language, proficiencyNames[level-1]))
	}
	return execute("cover_letter.tmpl", map[string]any{
		"Doc":       doc,
		"Language":  languageName(lang),
		"Recipient": recipient,
		"Languages": languages,
	})
}
