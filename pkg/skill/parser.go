package skill

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/infinitty-dev/skillflow/pkg/logger"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// SkillFileName is the primary document name inside a skill directory.
const SkillFileName = "SKILL.md"

var (
	principleOpenRe = regexp.MustCompile(`<principle name="([^"]+)">`)
	intakeRe        = regexp.MustCompile(`(?s)<intake>(.*?)</intake>`)
	routingRe       = regexp.MustCompile(`(?s)<routing>(.*?)</routing>`)
	indexRe         = regexp.MustCompile(`(?s)<workflows_index>(.*?)</workflows_index>`)
)

// Parse loads one skill document and produces its intermediate record. The
// path may be a skill directory containing SKILL.md or the document itself;
// the skill's base directory is the given directory or the file's parent.
// A missing document is a fatal read error. Every other missing
// substructure degrades to an empty value.
func Parse(ctx context.Context, path string) (*ParsedSkill, error) {
	docPath := path
	baseDir := filepath.Dir(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		baseDir = path
		docPath = filepath.Join(path, SkillFileName)
	}

	content, err := os.ReadFile(docPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read skill document %s", docPath)
	}

	logger.G(ctx).WithField("path", docPath).Debug("parsing skill document")

	text := string(content)
	body := stripFrontmatter(text)

	record := &ParsedSkill{
		Frontmatter: parseFrontmatter(content),
		Principles:  extractPrinciples(body),
		Intake:      extractIntake(body),
		Routing:     extractRouting(body),
		RawContent:  body,
	}

	record.References = listReferences(baseDir)
	record.Workflows = listWorkflows(baseDir, body)

	return record, nil
}

// parseFrontmatter extracts the YAML metadata block. Frontmatter that fails
// to parse degrades to an empty Frontmatter, never an error.
func parseFrontmatter(content []byte) Frontmatter {
	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return Frontmatter{}
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return Frontmatter{}
	}

	fm := Frontmatter{}
	fm.Name, _ = metaData["name"].(string)
	fm.Description, _ = metaData["description"].(string)
	fm.Version = stringValue(metaData["version"])
	fm.Author, _ = metaData["author"].(string)

	if rawTags, ok := metaData["tags"].([]interface{}); ok {
		for _, t := range rawTags {
			if tag, ok := t.(string); ok {
				fm.Tags = append(fm.Tags, tag)
			}
		}
	}

	return fm
}

// stringValue renders scalar frontmatter values that YAML may have decoded
// as non-strings, such as version: 1.0.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

// extractPrinciples collects <principle name="X">...</principle> blocks in
// document order. Malformed or unclosed tags are simply not extracted: an
// open tag whose closing tag is claimed by a later block does not swallow
// the text in between.
func extractPrinciples(body string) []Principle {
	var principles []Principle
	for _, loc := range principleOpenRe.FindAllStringSubmatchIndex(body, -1) {
		rest := body[loc[1]:]

		end := strings.Index(rest, "</principle>")
		if end == -1 {
			continue
		}
		if next := strings.Index(rest, "<principle"); next != -1 && next < end {
			continue
		}

		principles = append(principles, Principle{
			Name:    body[loc[2]:loc[3]],
			Content: strings.TrimSpace(rest[:end]),
		})
	}
	return principles
}

// extractIntake returns the first <intake> block, if any.
func extractIntake(body string) string {
	m := intakeRe.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractRouting parses the two-column pipe table inside the <routing>
// block. Header and separator rows are skipped; backticks around the
// workflow column are stripped. Malformed rows are ignored.
func extractRouting(body string) []RoutingEntry {
	m := routingRe.FindStringSubmatch(body)
	if m == nil {
		return nil
	}

	var entries []RoutingEntry
	for _, cells := range tableRows(m[1]) {
		if len(cells) < 2 {
			continue
		}
		entries = append(entries, RoutingEntry{
			Response: cells[0],
			Workflow: strings.Trim(cells[1], "`"),
		})
	}
	return entries
}

// tableRows splits pipe-delimited table rows into trimmed cells, dropping
// header and separator rows.
func tableRows(block string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		if strings.Contains(line, "---") {
			continue
		}

		parts := strings.Split(strings.Trim(line, "|"), "|")
		cells := make([]string, 0, len(parts))
		for _, p := range parts {
			cells = append(cells, strings.TrimSpace(p))
		}
		if len(cells) == 0 {
			continue
		}
		if isHeaderRow(cells) {
			continue
		}
		rows = append(rows, cells)
	}
	return rows
}

// isHeaderRow reports whether every cell is a column name, as in
// "| Response | Workflow |". Data rows that merely mention a column name
// in one cell are kept.
func isHeaderRow(cells []string) bool {
	for _, c := range cells {
		switch strings.ToLower(c) {
		case "response", "workflow", "purpose", "condition":
		default:
			return false
		}
	}
	return true
}

// listReferences enumerates references/*.md next to the skill document. A
// missing directory yields an empty list, not an error.
func listReferences(baseDir string) []Reference {
	var refs []Reference
	for _, name := range listMarkdown(filepath.Join(baseDir, "references")) {
		refs = append(refs, Reference{
			Name: strings.TrimSuffix(name, ".md"),
			Path: "references/" + name,
		})
	}
	return refs
}

// listWorkflows enumerates workflows/*.md and annotates each entry with a
// purpose recovered from the document's <workflows_index> table, matched by
// filename or by the row's first column stem.
func listWorkflows(baseDir, body string) []WorkflowRef {
	purposes := workflowPurposes(body)

	var workflows []WorkflowRef
	for _, name := range listMarkdown(filepath.Join(baseDir, "workflows")) {
		stem := strings.TrimSuffix(name, ".md")
		purpose := purposes[name]
		if purpose == "" {
			purpose = purposes[stem]
		}
		workflows = append(workflows, WorkflowRef{
			Name:    stem,
			Path:    "workflows/" + name,
			Purpose: purpose,
		})
	}
	return workflows
}

// workflowPurposes indexes the <workflows_index> pipe table by both the raw
// first column and its filename stem.
func workflowPurposes(body string) map[string]string {
	m := indexRe.FindStringSubmatch(body)
	if m == nil {
		return nil
	}

	purposes := make(map[string]string)
	for _, cells := range tableRows(m[1]) {
		if len(cells) < 2 {
			continue
		}
		key := strings.Trim(cells[0], "`")
		purposes[key] = cells[1]
		purposes[Stem(key)] = cells[1]
	}
	return purposes
}

// listMarkdown returns the sorted *.md file names in dir, or nil when the
// directory does not exist.
func listMarkdown(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names
}

// Stem reduces a workflow reference to its filename stem: backticks and
// directories are stripped along with the .md suffix, so `workflows/a.md`,
// workflows/a.md and a all reduce to "a". Routing rows are matched to
// workflows by stem equality.
func Stem(ref string) string {
	s := strings.Trim(strings.TrimSpace(ref), "`")
	return strings.TrimSuffix(path.Base(s), ".md")
}

// stripFrontmatter removes the leading YAML block and returns the body.
func stripFrontmatter(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	frontmatterEnd := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == -1 {
		return content
	}

	return strings.TrimLeft(strings.Join(lines[frontmatterEnd+1:], "\n"), "\n")
}
