// Package templates holds the server-rendered pages. Every page is parsed
// together with base.html and the shared partials.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"
)

const (
	baseTemplate     = "html/base.html"
	partialsTemplate = "html/includes/partials.html"
)

//go:embed html
var content embed.FS

// MustLoad parses every page under html/ keyed by its path relative to html/,
// for example "posts/index.html". extra is merged into the default funcs.
func MustLoad(extra template.FuncMap) map[string]*template.Template {
	templates, err := Load(extra)
	if err != nil {
		panic(err)
	}
	return templates
}

func Load(extra template.FuncMap) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"add":  add,
		"sub":  sub,
		"dict": dict,
		"date": formatDate,
		// replaced by the real renderer in the server
		"markdown": plainText,
	}
	for name, fn := range extra {
		funcs[name] = fn
	}

	templates := make(map[string]*template.Template)
	err := fs.WalkDir(content, "html", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") || p == baseTemplate || p == partialsTemplate {
			return nil
		}
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(content, baseTemplate, p, partialsTemplate)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", p, err)
		}
		templates[strings.TrimPrefix(p, "html/")] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func add(a, b int) int { return a + b }
func sub(a, b int) int { return a - b }

func plainText(text string) template.HTML {
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(text), "\n", "<br>"))
}

func formatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("invalid dict call: number of arguments must be even")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}
		m[key] = values[i+1]
	}
	return m, nil
}
