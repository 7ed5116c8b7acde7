package prompt

import (
	"fmt"
	"strings"
	"text/template"
)

// Engine renders prompt templates. Templates use a Handlebars-like
// syntax that is rewritten to text/template before parsing.
type Engine struct {
	funcs template.FuncMap
}

// NewEngine creates an engine with the built-in helpers.
func NewEngine() *Engine {
	return &Engine{funcs: defaultFuncs()}
}

// Render executes templateStr with the given variables.
func (e *Engine) Render(templateStr string, variables map[string]any) (string, error) {
	tmpl, err := e.compile(templateStr)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, variables); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecute, err)
	}
	return sb.String(), nil
}

// Parse validates templateStr and returns the variable names it references.
func (e *Engine) Parse(templateStr string) ([]string, error) {
	if _, err := e.compile(templateStr); err != nil {
		return nil, err
	}
	return extractVariables(templateStr), nil
}

// AddFunc registers a helper available to templates as name.
func (e *Engine) AddFunc(name string, fn any) {
	e.funcs[name] = fn
}

func (e *Engine) compile(templateStr string) (*template.Template, error) {
	if templateStr == "" {
		return nil, ErrEmpty
	}
	tmpl, err := template.New("prompt").Funcs(e.funcs).Parse(convertSyntax(templateStr))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return tmpl, nil
}

// ValidateVariables checks that every required variable is provided.
func ValidateVariables(required []string, provided map[string]any) error {
	var missing []string
	for _, name := range required {
		if _, ok := provided[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrVariable, strings.Join(missing, ", "))
	}
	return nil
}
