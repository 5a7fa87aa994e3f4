// Package scriptgen renders the Node.js migration script that clears and
// repopulates student accounts in Firebase.
package scriptgen

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/yigit/studentsync/internal/app/models"
)

//go:embed templates/populate_students.js.tmpl
var templateFS embed.FS

// Options parameterize the generated script.
type Options struct {
	// EnvFile is resolved relative to the script's own directory.
	EnvFile        string
	ProjectIDEnv   string
	ClientEmailEnv string
	PrivateKeyEnv  string
	Collection     string
	Role           string
}

type templateData struct {
	Options
	StudentsJSON string
}

// Generator renders record lists into the migration script.
type Generator struct {
	opts   Options
	tmpl   *template.Template
	logger zerolog.Logger
}

// NewGenerator parses the embedded template.
func NewGenerator(opts Options, lgr zerolog.Logger) (*Generator, error) {
	tmpl, err := template.New("populate_students.js.tmpl").
		Funcs(template.FuncMap{"json": jsLiteral}).
		ParseFS(templateFS, "templates/populate_students.js.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse script template: %w", err)
	}

	return &Generator{opts: opts, tmpl: tmpl, logger: lgr}, nil
}

// Render returns the script text for records. Output is byte-identical for
// identical input.
func (g *Generator) Render(records []models.StudentRecord) ([]byte, error) {
	if records == nil {
		records = []models.StudentRecord{}
	}

	students, err := jsLiteral(records)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize students: %w", err)
	}

	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, templateData{Options: g.opts, StudentsJSON: students}); err != nil {
		return nil, fmt.Errorf("failed to render script: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders records and writes the script to path, creating its
// directory when needed.
func (g *Generator) Write(path string, records []models.StudentRecord) error {
	script, err := g.Render(records)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, script, 0o644); err != nil {
		return fmt.Errorf("failed to write script %s: %w", path, err)
	}

	g.logger.Info().Str("path", path).Int("students", len(records)).Int("bytes", len(script)).Msg("Script written")
	return nil
}

// jsLiteral serializes v as JSON, which is also a valid JavaScript
// expression: encoding/json escapes quotes, backslashes, <, >, & and the
// U+2028/U+2029 line terminators.
func jsLiteral(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
