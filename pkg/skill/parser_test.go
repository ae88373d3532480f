package skill

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullSkillDoc = `---
name: Example
description: An example skill
version: "1.0"
author: dev
tags:
  - demo
  - testing
---

# Example

Intro text.

<intake>
Collect the task description.
</intake>

<principle name="Setup">
Do X
</principle>

<principle name="Review">
Check the diff carefully.
</principle>

<workflows_index>
| Workflow | Purpose |
|----------|---------|
| ` + "`workflows/workflow-a.md`" + ` | Apply the fix |
| workflow-b | Verify the result |
</workflows_index>

<routing>
| Response | Workflow |
|----------|----------|
| done | ` + "`workflow-a`" + ` |
| verify | workflows/workflow-b.md |
| missing | nowhere |
</routing>
`

func writeSkillFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, SkillFileName), []byte(fullSkillDoc), 0o644))

	workflowsDir := filepath.Join(dir, "workflows")
	require.NoError(t, os.MkdirAll(workflowsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(workflowsDir, "workflow-a.md"), []byte("# A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(workflowsDir, "workflow-b.md"), []byte("# B\n"), 0o644))

	referencesDir := filepath.Join(dir, "references")
	require.NoError(t, os.MkdirAll(referencesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(referencesDir, "guide.md"), []byte("# Guide\n"), 0o644))

	return dir
}

func TestParse(t *testing.T) {
	dir := writeSkillFixture(t)

	parsed, err := Parse(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "Example", parsed.Frontmatter.Name)
	assert.Equal(t, "An example skill", parsed.Frontmatter.Description)
	assert.Equal(t, "1.0", parsed.Frontmatter.Version)
	assert.Equal(t, "dev", parsed.Frontmatter.Author)
	assert.Equal(t, []string{"demo", "testing"}, parsed.Frontmatter.Tags)

	require.Len(t, parsed.Principles, 2)
	assert.Equal(t, Principle{Name: "Setup", Content: "Do X"}, parsed.Principles[0])
	assert.Equal(t, Principle{Name: "Review", Content: "Check the diff carefully."}, parsed.Principles[1])

	assert.Equal(t, "Collect the task description.", parsed.Intake)

	require.Len(t, parsed.Routing, 3)
	assert.Equal(t, RoutingEntry{Response: "done", Workflow: "workflow-a"}, parsed.Routing[0])
	assert.Equal(t, RoutingEntry{Response: "verify", Workflow: "workflows/workflow-b.md"}, parsed.Routing[1])
	assert.Equal(t, RoutingEntry{Response: "missing", Workflow: "nowhere"}, parsed.Routing[2])

	require.Len(t, parsed.Workflows, 2)
	assert.Equal(t, WorkflowRef{Name: "workflow-a", Path: "workflows/workflow-a.md", Purpose: "Apply the fix"}, parsed.Workflows[0])
	assert.Equal(t, WorkflowRef{Name: "workflow-b", Path: "workflows/workflow-b.md", Purpose: "Verify the result"}, parsed.Workflows[1])

	require.Len(t, parsed.References, 1)
	assert.Equal(t, Reference{Name: "guide", Path: "references/guide.md"}, parsed.References[0])

	assert.Contains(t, parsed.RawContent, "# Example")
	assert.NotContains(t, parsed.RawContent, "name: Example")
}

func TestParseFilePathDirectly(t *testing.T) {
	dir := writeSkillFixture(t)

	parsed, err := Parse(context.Background(), filepath.Join(dir, SkillFileName))
	require.NoError(t, err)

	assert.Equal(t, "Example", parsed.Frontmatter.Name)
	// Base directory resolves to the file's parent, so sibling listings
	// still apply.
	assert.Len(t, parsed.Workflows, 2)
	assert.Len(t, parsed.References, 1)
}

func TestParseMissingDocumentIsFatal(t *testing.T) {
	dir := t.TempDir()

	_, err := Parse(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read skill document")
}

func TestParseMissingSiblingDirsDegrade(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SkillFileName), []byte(fullSkillDoc), 0o644))

	parsed, err := Parse(context.Background(), dir)
	require.NoError(t, err)

	// References and workflows are filesystem-derived, never content-derived.
	assert.Empty(t, parsed.Workflows)
	assert.Empty(t, parsed.References)
	assert.Len(t, parsed.Routing, 3)
}

func TestParseMalformedFrontmatterDegrades(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nname: [unclosed\n---\n\n# Body\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, SkillFileName), []byte(doc), 0o644))

	parsed, err := Parse(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, parsed.Frontmatter.Name)
	assert.Contains(t, parsed.RawContent, "# Body")
}

func TestParseNoFrontmatter(t *testing.T) {
	dir := t.TempDir()
	doc := "# Plain\n\n<principle name=\"Only\">\ncontent\n</principle>\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, SkillFileName), []byte(doc), 0o644))

	parsed, err := Parse(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, parsed.Frontmatter.Name)
	require.Len(t, parsed.Principles, 1)
	assert.Equal(t, "Only", parsed.Principles[0].Name)
}

func TestParseMalformedTagsAreAbsent(t *testing.T) {
	dir := t.TempDir()
	doc := `# Broken

<principle name="Unclosed">
never terminated

<principle>missing name attribute</principle>
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, SkillFileName), []byte(doc), 0o644))

	parsed, err := Parse(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, parsed.Principles)
	assert.Empty(t, parsed.Intake)
	assert.Empty(t, parsed.Routing)
}

func TestParseUnclosedPrincipleDoesNotSwallowLaterBlocks(t *testing.T) {
	dir := t.TempDir()
	doc := `# Mixed

<principle name="Broken">
dangling

<principle name="Valid">
kept
</principle>
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, SkillFileName), []byte(doc), 0o644))

	parsed, err := Parse(context.Background(), dir)
	require.NoError(t, err)

	// "Broken" never closes; its would-be content must not absorb the
	// following block's text or closing tag.
	require.Len(t, parsed.Principles, 1)
	assert.Equal(t, Principle{Name: "Valid", Content: "kept"}, parsed.Principles[0])
}

func TestParseRoutingRowWithColumnNameCell(t *testing.T) {
	dir := t.TempDir()
	doc := `<routing>
| Response | Workflow |
|----------|----------|
| workflow | workflow-a |
| Purpose | workflow-b |
</routing>
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, SkillFileName), []byte(doc), 0o644))

	parsed, err := Parse(context.Background(), dir)
	require.NoError(t, err)

	// Only the row where every cell is a column name is a header; data rows
	// whose response cell happens to be a column name survive.
	require.Len(t, parsed.Routing, 2)
	assert.Equal(t, RoutingEntry{Response: "workflow", Workflow: "workflow-a"}, parsed.Routing[0])
	assert.Equal(t, RoutingEntry{Response: "Purpose", Workflow: "workflow-b"}, parsed.Routing[1])
}

func TestParseIntakeFirstMatchOnly(t *testing.T) {
	dir := t.TempDir()
	doc := "<intake>\nfirst\n</intake>\n\n<intake>\nsecond\n</intake>\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, SkillFileName), []byte(doc), 0o644))

	parsed, err := Parse(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "first", parsed.Intake)
}

func TestStem(t *testing.T) {
	assert.Equal(t, "workflow-a", Stem("workflow-a"))
	assert.Equal(t, "workflow-a", Stem("workflow-a.md"))
	assert.Equal(t, "workflow-a", Stem("workflows/workflow-a.md"))
	assert.Equal(t, "workflow-a", Stem("`workflows/workflow-a.md`"))
	assert.Equal(t, "workflow-a", Stem(" `workflow-a` "))
}
