package generation

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/ncert-revision/revision-api/internal/domain"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// promptData is the data passed to the prompt templates.
type promptData struct {
	Class   string
	Subject string
	Chapter string
	Count   int
}

// BuildPrompt renders the prompt asking for count items of kind about the
// chapter in cc.
func BuildPrompt(kind domain.ItemKind, cc domain.ChapterContext, count int) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidItemKind, kind)
	}

	data := promptData{
		Class:   cc.Class.Name,
		Subject: cc.Subject.Name,
		Chapter: cc.Chapter.Title,
		Count:   count,
	}

	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, string(kind)+".tmpl", data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
