package rendering

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Template file names, shared by the embedded defaults and override directories
const (
	IndustryTemplateFile      = "template_generated_industrial_class.txt"
	ProcessMethodTemplateFile = "template_generated_process_method.txt"
	GetterTemplateFile        = "template_generated_getter.txt"
)

//go:embed templates/*.txt
var defaultTemplates embed.FS

// Templates holds one template per generated artifact kind
type Templates struct {
	Industry      *Template
	ProcessMethod *Template
	Getter        *Template
}

// DefaultTemplates returns the templates shipped with the binary
func DefaultTemplates() (*Templates, error) {
	return LoadTemplates("")
}

// LoadTemplates reads the templates from dir. Files missing from dir fall back to the
// embedded defaults; an empty dir loads only the defaults.
func LoadTemplates(dir string) (*Templates, error) {
	engine := NewTemplateEngine()
	templates := &Templates{}

	targets := []struct {
		file string
		dst  **Template
	}{
		{file: IndustryTemplateFile, dst: &templates.Industry},
		{file: ProcessMethodTemplateFile, dst: &templates.ProcessMethod},
		{file: GetterTemplateFile, dst: &templates.Getter},
	}

	for _, target := range targets {
		content, err := readTemplate(dir, target.file)
		if err != nil {
			return nil, err
		}

		tmpl, err := engine.Parse(target.file, content)
		if err != nil {
			return nil, err
		}
		*target.dst = tmpl
	}

	return templates, nil
}

// Sources returns the raw text of every template, in a fixed order
func (t *Templates) Sources() []string {
	return []string{t.Industry.Source(), t.ProcessMethod.Source(), t.Getter.Source()}
}

func readTemplate(dir, file string) (string, error) {
	if dir != "" {
		content, err := os.ReadFile(filepath.Join(dir, file)) //nolint:gosec // user-provided template directory
		if err == nil {
			return string(content), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: failed to read %s: %w", ErrTemplate, file, err)
		}
	}

	content, err := defaultTemplates.ReadFile("templates/" + file)
	if err != nil {
		return "", fmt.Errorf("%w: missing default template %s: %w", ErrTemplate, file, err)
	}

	return string(content), nil
}
