// Package templates renders the transactional emails. Every template ships
// as a pair: name.html for the HTML body and name.txt for the plain-text part.
package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// ErrUnknownTemplate is returned by Render for a name with no embedded pair.
var ErrUnknownTemplate = errors.New("unknown email template")

var funcs = map[string]any{
	"plural": plural,
}

// Message is a rendered email body.
type Message struct {
	HTML string
	Text string
}

type pair struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// Renderer holds the parsed template pairs.
type Renderer struct {
	pairs map[string]pair
}

// NewRenderer parses the embedded templates. An HTML template without a
// matching text template is a build error, so every email has both parts.
func NewRenderer() (*Renderer, error) {
	return newRenderer(templateFS)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	htmlFiles, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pairs: make(map[string]pair, len(htmlFiles))}
	for _, file := range htmlFiles {
		name := strings.TrimSuffix(file, path.Ext(file))

		html, err := htmltemplate.New(file).Funcs(funcs).ParseFS(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		text, err := texttemplate.New(name+".txt").Funcs(funcs).ParseFS(fsys, name+".txt")
		if err != nil {
			return nil, fmt.Errorf("template %s has no usable text part: %w", name, err)
		}
		r.pairs[name] = pair{html: html, text: text}
	}
	return r, nil
}

// Names lists the available templates in order.
func (r *Renderer) Names() []string {
	names := make([]string, 0, len(r.pairs))
	for name := range r.pairs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render executes both parts of the named template.
func (r *Renderer) Render(name string, data any) (Message, error) {
	p, ok := r.pairs[name]
	if !ok {
		return Message{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	var html, text bytes.Buffer
	if err := p.html.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s.html: %w", name, err)
	}
	if err := p.text.Execute(&text, data); err != nil {
		return Message{}, fmt.Errorf("failed to render %s.txt: %w", name, err)
	}
	return Message{HTML: html.String(), Text: text.String()}, nil
}

// plural formats n with the singular or plural noun.
func plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// PasswordResetData fills password_reset.
type PasswordResetData struct {
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// WelcomeData fills welcome.
type WelcomeData struct {
	UserName string
	AppURL   string
}

// GoalCompletedData fills goal_completed.
type GoalCompletedData struct {
	UserName      string
	GoalTitle     string
	ActivityCount int
	GoalURL       string
}
