// Package assets provides the embedded web pages and static files served by the dictionary editor.
package assets

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates/index.html
var fallbackIndexTemplate string

//go:embed templates/docs.html
var fallbackDocsTemplate string

//go:embed static
var staticFiles embed.FS

// PageData is rendered into every page.
type PageData struct {
	Title   string
	Columns []string
}

// Pages holds the parsed page templates.
type Pages struct {
	Index *template.Template
	Docs  *template.Template
}

// ParsePages parses the index and docs templates. An empty path selects the embedded page.
func ParsePages(indexPath, docsPath string) (*Pages, error) {
	index, err := parseTemplateWithFallback(indexPath, "index.html", fallbackIndexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index page: %w", err)
	}
	docs, err := parseTemplateWithFallback(docsPath, "docs.html", fallbackDocsTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse docs page: %w", err)
	}
	return &Pages{Index: index, Docs: docs}, nil
}

// Static returns the embedded static files rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}

func parseTemplateWithFallback(templatePath string, fallbackName string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err != nil {
			return nil, fmt.Errorf("template file not found or accessible: %w", err)
		}
		fileName := filepath.Base(templatePath)
		tmpl, err := template.New(fileName).
			Funcs(funcMap).
			ParseFiles(templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template file %s: %w", templatePath, err)
		}
		slog.Default().Debug("using page template from file", slog.String("templatePath", templatePath))
		return tmpl, nil
	}

	tmpl, err := template.New(fallbackName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
