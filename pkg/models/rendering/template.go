// Package rendering provides the template rendering used to assemble generated industry code
package rendering

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ErrTemplate is returned when a template cannot be read, parsed or fully substituted
var ErrTemplate = errors.New("template error")

var emptyCommand = regexp.MustCompile(`^\||\|\s*\||\|$`)

const (
	leftDelim  = "${"
	rightDelim = "}"
)

// TemplateEngine parses templates with ${placeholder} substitution points and Sprig functions
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a new template engine with Sprig functions
func NewTemplateEngine() *TemplateEngine {
	return &TemplateEngine{
		funcMap: sprig.TxtFuncMap(),
	}
}

// Template is a parsed template ready to be executed
type Template struct {
	name         string
	source       string
	placeholders []string
	tmpl         *template.Template
}

// Parse parses a template. ${name} is replaced by the value of name, $$ produces a
// literal dollar sign and ${ .name | upper } runs a Sprig pipeline.
func (e *TemplateEngine) Parse(name, content string) (*Template, error) {
	translated, placeholders, err := translate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template %s: %w", ErrTemplate, name, err)
	}

	tmpl, err := template.New(name).
		Delims(leftDelim, rightDelim).
		Funcs(e.funcMap).
		Option("missingkey=error").
		Parse(translated)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template %s: %w", ErrTemplate, name, err)
	}

	return &Template{
		name:         name,
		source:       content,
		placeholders: placeholders,
		tmpl:         tmpl,
	}, nil
}

// Name returns the template name
func (t *Template) Name() string {
	return t.name
}

// Source returns the unparsed template text
func (t *Template) Source() string {
	return t.source
}

// Placeholders returns the distinct ${name} placeholders referenced by the template
func (t *Template) Placeholders() []string {
	return append([]string(nil), t.placeholders...)
}

// Execute substitutes every placeholder. A placeholder without a value is an error.
func (t *Template) Execute(values map[string]interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, values); err != nil {
		return "", fmt.Errorf("%w: failed to execute template %s: %w", ErrTemplate, t.name, err)
	}

	return buf.String(), nil
}

// translate rewrites ${name} into a field action and $$ into a literal dollar.
// Other ${...} bodies are passed through as pipelines once checked for empty commands.
func translate(content string) (string, []string, error) {
	var sb strings.Builder
	var placeholders []string
	seen := make(map[string]struct{})

	for i := 0; i < len(content); {
		switch {
		case strings.HasPrefix(content[i:], "$$"):
			sb.WriteString(`${"$"}`)
			i += 2
		case strings.HasPrefix(content[i:], leftDelim):
			end := strings.Index(content[i:], rightDelim)
			if end < 0 {
				// left unterminated so that the parser reports it
				sb.WriteString(content[i:])
				return sb.String(), placeholders, nil
			}

			inner := strings.TrimSpace(content[i+len(leftDelim) : i+end])
			if isIdentifier(inner) {
				if _, ok := seen[inner]; !ok {
					seen[inner] = struct{}{}
					placeholders = append(placeholders, inner)
				}
				sb.WriteString(leftDelim + "." + inner + rightDelim)
			} else {
				if err := checkPipeline(inner); err != nil {
					return "", nil, err
				}
				sb.WriteString(content[i : i+end+len(rightDelim)])
			}
			i += end + len(rightDelim)
		default:
			sb.WriteByte(content[i])
			i++
		}
	}

	return sb.String(), placeholders, nil
}

// checkPipeline rejects empty actions and pipelines with an empty command, which
// text/template would otherwise accept as the preceding command alone
func checkPipeline(body string) error {
	if body == "" {
		return errors.New("empty placeholder")
	}

	if emptyCommand.MatchString(body) {
		return fmt.Errorf("empty command in pipeline %q", body)
	}

	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}
