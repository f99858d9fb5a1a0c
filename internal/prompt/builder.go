package prompt

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type TemplateName string

const (
	TemplateCountryProfile     TemplateName = "country_profile.tmpl"
	TemplateContentTranslation TemplateName = "content_translation.tmpl"
	TemplateCountryNews        TemplateName = "country_news.tmpl"
)

// Data is the typed input of one prompt template.
type Data interface {
	templateName() TemplateName
}

var funcs = template.FuncMap{
	"json": toJSON,
}

// parseTemplates parses every embedded prompt once per process.
var parseTemplates = sync.OnceValues(func() (*template.Template, error) {
	return template.New("prompts").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
})

// PromptBuilder renders the profile, translation and news prompts. The
// economic history span and headline count are fixed per builder.
type PromptBuilder struct {
	EconomicYears int
	HeadlineCount int
}

var (
	defaultBuilderOnce sync.Once
	defaultBuilder     *PromptBuilder
)

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		EconomicYears: defaultEconomicYears,
		HeadlineCount: defaultHeadlineCount,
	}
}

func DefaultPromptBuilder() *PromptBuilder {
	defaultBuilderOnce.Do(func() {
		defaultBuilder = NewPromptBuilder()
	})
	return defaultBuilder
}

// Render executes the template that data belongs to.
func (pb *PromptBuilder) Render(data Data) (string, error) {
	set, err := parseTemplates()
	if err != nil {
		return "", fmt.Errorf("parse prompt templates: %w", err)
	}
	name := data.templateName()
	tmpl := set.Lookup(string(name))
	if tmpl == nil {
		return "", fmt.Errorf("unknown prompt template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return buf.String(), nil
}

// toJSON renders a value inline. A nil slice becomes [] so the model always
// sees an array.
func toJSON(v any) (string, error) {
	if facts, ok := v.([]string); ok && facts == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
