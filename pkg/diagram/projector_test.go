package diagram

import (
	"testing"

	"github.com/infinitty-dev/skillflow/pkg/skill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleRecord() *skill.ParsedSkill {
	return &skill.ParsedSkill{
		Frontmatter: skill.Frontmatter{Name: "Example", Description: "An example skill"},
		Principles: []skill.Principle{
			{Name: "Setup", Content: "Do X"},
		},
		Workflows: []skill.WorkflowRef{
			{Name: "workflow-a", Path: "workflows/workflow-a.md", Purpose: "Apply the fix"},
		},
		References: []skill.Reference{
			{Name: "guide", Path: "references/guide.md"},
		},
		Routing: []skill.RoutingEntry{
			{Response: "done", Workflow: "workflow-a"},
			{Response: "missing", Workflow: "nowhere"},
		},
	}
}

func TestFromSkill(t *testing.T) {
	d := FromSkill(exampleRecord(), "/skills/example")

	assert.Equal(t, TypeFlowchart, d.Type)
	assert.Equal(t, SourceSkill, d.Metadata.SourceType)
	assert.Equal(t, "/skills/example", d.Metadata.SourcePath)
	assert.Equal(t, MetadataVersion, d.Metadata.Version)
	require.NotNil(t, d.Metadata.Original)
	assert.Equal(t, "Example", d.Metadata.Original.Frontmatter.Name)
	assert.False(t, d.Metadata.GeneratedAt.IsZero())

	src := d.Source
	assert.Contains(t, src, "flowchart TB")
	assert.Contains(t, src, `skill_example["Example"]:::skill`)
	assert.Contains(t, src, `subgraph principles["Principles"]`)
	assert.Contains(t, src, `principle_setup["Setup"]:::principle`)
	assert.Contains(t, src, `workflow_workflow_a["workflow-a: Apply the fix"]:::workflow`)
	assert.Contains(t, src, `ref_guide["guide"]:::reference`)

	// Routing entries become labeled edges matched by filename stem.
	assert.Contains(t, src, `skill_example -->|"done"| workflow_workflow_a`)
	// Non-matching routing targets produce no edge at all.
	assert.NotContains(t, src, "missing")
	assert.NotContains(t, src, "nowhere")
}

func TestFromSkillEmptySectionsOmitted(t *testing.T) {
	d := FromSkill(&skill.ParsedSkill{
		Frontmatter: skill.Frontmatter{Name: "Bare"},
	}, "/skills/bare")

	assert.Contains(t, d.Source, `skill_bare["Bare"]:::skill`)
	assert.NotContains(t, d.Source, "subgraph")
	assert.NotContains(t, d.Source, "-->")
}

func TestFromSkillPurposeTruncation(t *testing.T) {
	rec := &skill.ParsedSkill{
		Frontmatter: skill.Frontmatter{Name: "Long"},
		Workflows: []skill.WorkflowRef{
			{Name: "wf", Path: "workflows/wf.md", Purpose: "This workflow applies the fix to the repository"},
		},
	}

	d := FromSkill(rec, "")
	assert.Contains(t, d.Source, `workflow_wf["wf: This workflow applies the fix ..."]:::workflow`)
}

func TestFromSkillLabelEscaping(t *testing.T) {
	rec := &skill.ParsedSkill{
		Frontmatter: skill.Frontmatter{Name: `Say "Hi"` + "\nTwice"},
	}

	d := FromSkill(rec, "")
	assert.Contains(t, d.Source, `skill_say__hi__twice["Say 'Hi'\nTwice"]:::skill`)
}

func TestFromSkillRoutingMatchesByStem(t *testing.T) {
	rec := &skill.ParsedSkill{
		Frontmatter: skill.Frontmatter{Name: "Stems"},
		Workflows: []skill.WorkflowRef{
			{Name: "workflow-a", Path: "workflows/workflow-a.md"},
		},
		Routing: []skill.RoutingEntry{
			{Response: "backticked", Workflow: "`workflow-a`"},
			{Response: "pathed", Workflow: "workflows/workflow-a.md"},
		},
	}

	d := FromSkill(rec, "")
	assert.Contains(t, d.Source, `skill_stems -->|"backticked"| workflow_workflow_a`)
	assert.Contains(t, d.Source, `skill_stems -->|"pathed"| workflow_workflow_a`)
}

func TestFromSkills(t *testing.T) {
	records := []*skill.ParsedSkill{
		exampleRecord(),
		{Frontmatter: skill.Frontmatter{Name: "Second"}},
	}

	d := FromSkills(records, "/skills")

	assert.Equal(t, SourceSkillsDirectory, d.Metadata.SourceType)
	require.Len(t, d.Metadata.OriginalBatch, 2)

	src := d.Source
	assert.Contains(t, src, `skills_skills["skills (2)"]:::skill`)
	assert.Contains(t, src, `subgraph skill_example["Example"]`)
	assert.Contains(t, src, `skill_example_principles["1 principles"]:::principle`)
	assert.Contains(t, src, `skill_example_workflows["1 workflows"]:::workflow`)
	assert.Contains(t, src, `skill_example_references["1 references"]:::reference`)
	assert.Contains(t, src, "skills_skills --> skill_example")
	assert.Contains(t, src, `subgraph skill_second["Second"]`)

	// Aggregate view only: no individual principle or workflow nodes.
	assert.NotContains(t, src, "principle_setup")
	assert.NotContains(t, src, "workflow_workflow_a")
}

func TestSanitizeID(t *testing.T) {
	assert.Equal(t, "code_review", sanitizeID("Code Review"))
	assert.Equal(t, "workflow_a", sanitizeID("workflow-a"))
	assert.Equal(t, "a_b_c", sanitizeID("a/b.c"))
}
