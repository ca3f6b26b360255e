package reporter

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/models"
)

//go:embed templates/diff.html.tmpl
var templateFS embed.FS

const diffTemplateName = "diff.html.tmpl"

// HTMLDiffRenderer renders a DiffArtifact as a standalone HTML page. Output depends only on
// the artifact, so identical inputs produce identical bytes.
type HTMLDiffRenderer struct {
	template *template.Template
}

// NewHTMLDiffRenderer parses the embedded template.
func NewHTMLDiffRenderer() (*HTMLDiffRenderer, error) {
	tmpl, err := template.New(diffTemplateName).
		Funcs(diffTemplateFunctions()).
		ParseFS(templateFS, "templates/"+diffTemplateName)
	if err != nil {
		return nil, common.WrapError(err, "failed to parse diff template")
	}
	return &HTMLDiffRenderer{template: tmpl}, nil
}

// RenderDiff executes the template for artifact.
func (r *HTMLDiffRenderer) RenderDiff(artifact *models.DiffArtifact) ([]byte, error) {
	if artifact == nil {
		return nil, common.NewValidationError("artifact", nil, "artifact cannot be nil")
	}
	var buf bytes.Buffer
	if err := r.template.ExecuteTemplate(&buf, diffTemplateName, artifact); err != nil {
		return nil, common.WrapError(err, "failed to execute diff template")
	}
	return buf.Bytes(), nil
}
