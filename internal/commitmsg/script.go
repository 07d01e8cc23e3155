package commitmsg

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/thomas-vilte/husky-installer/internal/errors"
)

//go:embed templates/commit-msg.cjs.tmpl
var scriptSource string

var scriptTemplate = template.Must(template.New("commit-msg.cjs").Parse(scriptSource))

// RenderScript renders the self-contained Node script run by the commit-msg
// hook, with table baked in as a literal object.
func RenderScript(table StyleTable) (string, error) {
	var buf bytes.Buffer
	if err := scriptTemplate.Execute(&buf, struct{ Mapping string }{jsMapping(table)}); err != nil {
		return "", errors.ErrTemplateRender.WithError(err).WithContext("template", "commit-msg.cjs")
	}
	return buf.String(), nil
}

func jsMapping(table StyleTable) string {
	lines := make([]string, 0, len(table.entries))
	for _, e := range table.entries {
		lines = append(lines, "  "+e.Type+": "+jsString(e.Prefix))
	}
	return strings.Join(lines, ",\n")
}

var jsEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

func jsString(s string) string {
	return "'" + jsEscaper.Replace(s) + "'"
}
