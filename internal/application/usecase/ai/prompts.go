package ai

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

// Prompt names in prompts.yaml.
const (
	PromptChat            = "chat"
	PromptLifeReport      = "life_report"
	PromptGoalSuggestions = "goal_suggestions"
)

type promptSource struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// Prompt is a compiled system and user template pair.
type Prompt struct {
	system *template.Template
	user   *template.Template
}

// Prompts holds the compiled prompt set.
type Prompts struct {
	byName map[string]*Prompt
}

// LoadPrompts compiles the embedded prompt set.
func LoadPrompts() (*Prompts, error) {
	return ParsePrompts(promptsYAML)
}

// ParsePrompts compiles a YAML document of named system/user templates.
func ParsePrompts(data []byte) (*Prompts, error) {
	var sources map[string]promptSource
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse prompts: %w", err)
	}

	prompts := &Prompts{byName: make(map[string]*Prompt, len(sources))}
	for name, src := range sources {
		p := &Prompt{}
		var err error
		if p.system, err = compile(name+".system", src.System); err != nil {
			return nil, err
		}
		if p.user, err = compile(name+".user", src.User); err != nil {
			return nil, err
		}
		prompts.byName[name] = p
	}
	return prompts, nil
}

func compile(name, text string) (*template.Template, error) {
	if text == "" {
		return nil, nil
	}
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to compile prompt %s: %w", name, err)
	}
	return tmpl, nil
}

// Render executes the named prompt with data and returns the system and user texts.
func (p *Prompts) Render(name string, data any) (system, user string, err error) {
	prompt, ok := p.byName[name]
	if !ok {
		return "", "", fmt.Errorf("unknown prompt %q", name)
	}
	if system, err = execute(prompt.system, data); err != nil {
		return "", "", err
	}
	if user, err = execute(prompt.user, data); err != nil {
		return "", "", err
	}
	return system, user, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	if tmpl == nil {
		return "", nil
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", tmpl.Name(), err)
	}
	return strings.TrimSpace(sb.String()), nil
}
