package export

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/infinitty-dev/skillflow/pkg/skill"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// placeholderContent stands in for principle prose the graph view never
// carried, emitted only when Options.Placeholders is set.
const placeholderContent = "<!-- principle content not recoverable from diagram -->"

// documentTemplate fixes the section order of exported documents:
// frontmatter, title, description, intake, principles, workflow index,
// routing, references. Each section renders only when its source data is
// non-empty.
const documentTemplate = `{{- if .FrontmatterLines -}}
---
{{range .FrontmatterLines}}{{.}}
{{end}}---

{{end -}}
# {{.Title}}
{{- if .Description}}

{{.Description}}
{{- end}}
{{- if .Intake}}

<intake>
{{.Intake}}
</intake>
{{- end}}
{{- if .Principles}}

## Principles
{{range .Principles}}
<principle name="{{.Name}}">
{{.Content}}
</principle>
{{- end}}
{{- end}}
{{- if .Workflows}}

## Workflows

<workflows_index>
| Workflow | Purpose |
|----------|---------|
{{range .Workflows}}| {{backtick .Path}} | {{.Purpose}} |
{{end}}</workflows_index>
{{- end}}
{{- if .Routing}}

## Routing

<routing>
| Response | Workflow |
|----------|----------|
{{range .Routing}}| {{.Response}} | {{backtick .Workflow}} |
{{end}}</routing>
{{- end}}
{{- if .References}}

## References
{{range .References}}
- {{backtick .Path}}
{{- end}}
{{- end}}
`

var docTmpl = template.Must(template.New("skill-document").Funcs(template.FuncMap{
	"backtick": func(s string) string { return "`" + s + "`" },
}).Parse(documentTemplate))

type documentData struct {
	FrontmatterLines []string
	Title            string
	Description      string
	Intake           string
	Principles       []skill.Principle
	Workflows        []skill.WorkflowRef
	Routing          []skill.RoutingEntry
	References       []skill.Reference
}

// render serializes one record into document text.
func render(record *skill.ParsedSkill, opts Options) (string, error) {
	data := documentData{
		FrontmatterLines: frontmatterLines(record.Frontmatter),
		Title:            record.Frontmatter.Name,
		Description:      record.Frontmatter.Description,
		Intake:           record.Intake,
		Workflows:        record.Workflows,
		References:       record.References,
	}
	if data.Title == "" {
		data.Title = "skill"
	}

	for _, p := range record.Principles {
		if p.Content == "" && opts.Placeholders {
			p.Content = placeholderContent
		}
		data.Principles = append(data.Principles, p)
	}

	// The workflow column is normalized to the canonical sibling path so
	// re-exports are byte-stable regardless of how the source row spelled
	// the reference.
	for _, r := range record.Routing {
		r.Workflow = "workflows/" + skill.Stem(r.Workflow) + ".md"
		data.Routing = append(data.Routing, r)
	}

	var buf bytes.Buffer
	if err := docTmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to render skill document")
	}
	return buf.String(), nil
}

// frontmatterLines emits only the keys present, in fixed order. Values go
// through the YAML encoder so quoting stays correct for strings with
// special characters.
func frontmatterLines(fm skill.Frontmatter) []string {
	var lines []string
	appendLine := func(key, value string) {
		if value == "" {
			return
		}
		lines = append(lines, yamlLine(key, value))
	}

	appendLine("name", fm.Name)
	appendLine("description", fm.Description)
	appendLine("version", fm.Version)
	appendLine("author", fm.Author)

	if len(fm.Tags) > 0 {
		b, err := yaml.Marshal(map[string][]string{"tags": fm.Tags})
		if err == nil {
			lines = append(lines, strings.TrimRight(string(b), "\n"))
		}
	}
	return lines
}

func yamlLine(key, value string) string {
	b, err := yaml.Marshal(map[string]string{key: value})
	if err != nil {
		return key + ": " + value
	}
	return strings.TrimRight(string(b), "\n")
}
