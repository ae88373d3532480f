package diagram

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/infinitty-dev/skillflow/pkg/skill"
)

// MetadataVersion identifies the diagram metadata layout.
const MetadataVersion = "1.0"

// purposeDisplayLen caps how much of a workflow's purpose appears in its
// node label.
const purposeDisplayLen = 30

var nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]`)

var classDefs = []string{
	"classDef skill fill:#8b5cf6,stroke:#6d28d9,color:#fff",
	"classDef principle fill:#3b82f6,stroke:#1d4ed8,color:#fff",
	"classDef workflow fill:#10b981,stroke:#047857,color:#fff",
	"classDef reference fill:#f59e0b,stroke:#b45309,color:#fff",
}

// FromSkill renders one parsed record as a Mermaid flowchart. The skill is
// a single root node followed by subgraphs for principles, workflows and
// references, each emitted only when non-empty. Routing entries become
// labeled edges from the root to the workflow whose name equals the routing
// target's filename stem; entries with no matching workflow are omitted.
func FromSkill(s *skill.ParsedSkill, sourcePath string) *Diagram {
	name := s.Frontmatter.Name
	if name == "" {
		name = "skill"
	}
	rootID := "skill_" + sanitizeID(name)

	var b strings.Builder
	b.WriteString("flowchart TB\n")
	for _, def := range classDefs {
		fmt.Fprintf(&b, "    %s\n", def)
	}
	fmt.Fprintf(&b, "    %s[\"%s\"]:::skill\n", rootID, escapeLabel(name))

	if len(s.Principles) > 0 {
		b.WriteString("    subgraph principles[\"Principles\"]\n")
		for _, p := range s.Principles {
			fmt.Fprintf(&b, "        principle_%s[\"%s\"]:::principle\n",
				sanitizeID(p.Name), escapeLabel(p.Name))
		}
		b.WriteString("    end\n")
		fmt.Fprintf(&b, "    %s --> principles\n", rootID)
	}

	if len(s.Workflows) > 0 {
		b.WriteString("    subgraph workflows[\"Workflows\"]\n")
		for _, w := range s.Workflows {
			fmt.Fprintf(&b, "        workflow_%s[\"%s\"]:::workflow\n",
				sanitizeID(w.Name), escapeLabel(workflowLabel(w)))
		}
		b.WriteString("    end\n")
		fmt.Fprintf(&b, "    %s --> workflows\n", rootID)
	}

	if len(s.References) > 0 {
		b.WriteString("    subgraph references[\"References\"]\n")
		for _, r := range s.References {
			fmt.Fprintf(&b, "        ref_%s[\"%s\"]:::reference\n",
				sanitizeID(r.Name), escapeLabel(r.Name))
		}
		b.WriteString("    end\n")
		fmt.Fprintf(&b, "    %s --> references\n", rootID)
	}

	for _, route := range s.Routing {
		target, ok := matchWorkflow(s.Workflows, route.Workflow)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "    %s -->|\"%s\"| workflow_%s\n",
			rootID, escapeLabel(route.Response), sanitizeID(target.Name))
	}

	return &Diagram{
		Source: b.String(),
		Type:   TypeFlowchart,
		Metadata: Metadata{
			SourceType:  SourceSkill,
			SourcePath:  sourcePath,
			GeneratedAt: time.Now().UTC(),
			Version:     MetadataVersion,
			Original:    s,
		},
	}
}

// FromSkills renders a directory batch: one root node with each skill as
// its own subgraph showing only aggregate counts. Individual principles,
// workflows and references are deliberately collapsed for scale.
func FromSkills(records []*skill.ParsedSkill, sourcePath string) *Diagram {
	rootLabel := filepath.Base(sourcePath)
	if rootLabel == "." || rootLabel == "/" || rootLabel == "" {
		rootLabel = "skills"
	}
	rootID := "skills_" + sanitizeID(rootLabel)

	var b strings.Builder
	b.WriteString("flowchart TB\n")
	for _, def := range classDefs {
		fmt.Fprintf(&b, "    %s\n", def)
	}
	fmt.Fprintf(&b, "    %s[\"%s (%d)\"]:::skill\n", rootID, escapeLabel(rootLabel), len(records))

	for i, s := range records {
		name := s.Frontmatter.Name
		if name == "" {
			name = fmt.Sprintf("skill-%d", i+1)
		}
		sid := "skill_" + sanitizeID(name)

		fmt.Fprintf(&b, "    subgraph %s[\"%s\"]\n", sid, escapeLabel(name))
		if n := len(s.Principles); n > 0 {
			fmt.Fprintf(&b, "        %s_principles[\"%d principles\"]:::principle\n", sid, n)
		}
		if n := len(s.Workflows); n > 0 {
			fmt.Fprintf(&b, "        %s_workflows[\"%d workflows\"]:::workflow\n", sid, n)
		}
		if n := len(s.References); n > 0 {
			fmt.Fprintf(&b, "        %s_references[\"%d references\"]:::reference\n", sid, n)
		}
		b.WriteString("    end\n")
		fmt.Fprintf(&b, "    %s --> %s\n", rootID, sid)
	}

	return &Diagram{
		Source: b.String(),
		Type:   TypeFlowchart,
		Metadata: Metadata{
			SourceType:    SourceSkillsDirectory,
			SourcePath:    sourcePath,
			GeneratedAt:   time.Now().UTC(),
			Version:       MetadataVersion,
			OriginalBatch: records,
		},
	}
}

// matchWorkflow resolves a routing target against the workflow list by
// filename stem equality.
func matchWorkflow(workflows []skill.WorkflowRef, ref string) (skill.WorkflowRef, bool) {
	stem := skill.Stem(ref)
	for _, w := range workflows {
		if w.Name == stem {
			return w, true
		}
	}
	return skill.WorkflowRef{}, false
}

// workflowLabel is the node label for a workflow: its name plus a
// truncated purpose when one is known.
func workflowLabel(w skill.WorkflowRef) string {
	if w.Purpose == "" {
		return w.Name
	}
	return w.Name + ": " + truncate(w.Purpose, purposeDisplayLen)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// sanitizeID derives a diagram identifier from a display name: every
// non-alphanumeric character becomes an underscore and the result is
// lowercased.
func sanitizeID(name string) string {
	return strings.ToLower(nonAlnumRe.ReplaceAllString(name, "_"))
}

// escapeLabel keeps text valid inside the flowchart's quoted-label syntax.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	return strings.ReplaceAll(s, "\n", `\n`)
}
