package export

import (
	"strings"

	"github.com/infinitty-dev/skillflow/pkg/diagram"
	"github.com/infinitty-dev/skillflow/pkg/skill"
)

// fromGraph reconstructs a partial record from the graph view alone. Node
// roles are recovered from style classes, falling back to id substring
// heuristics for hand-edited diagrams that dropped the classes. The graph
// never carried principle prose, so reconstructed principles always have
// empty content.
func fromGraph(g *diagram.Graph) *skill.ParsedSkill {
	rec := &skill.ParsedSkill{}

	rootID := ""
	workflowNames := make(map[string]string)

	for _, n := range g.Nodes {
		switch nodeRole(n) {
		case "skill":
			if rootID == "" {
				rootID = n.ID
				rec.Frontmatter.Name = n.Data
			}

		case "principle":
			rec.Principles = append(rec.Principles, skill.Principle{Name: n.Data})

		case "workflow":
			name, purpose := splitWorkflowLabel(n.Data)
			workflowNames[n.ID] = name
			rec.Workflows = append(rec.Workflows, skill.WorkflowRef{
				Name:    name,
				Path:    "workflows/" + name + ".md",
				Purpose: purpose,
			})

		case "reference":
			rec.References = append(rec.References, skill.Reference{
				Name: n.Data,
				Path: "references/" + n.Data + ".md",
			})
		}
	}

	for _, e := range g.Edges {
		if e.Label == "" || e.Source != rootID {
			continue
		}
		name, ok := workflowNames[e.Target]
		if !ok {
			continue
		}
		rec.Routing = append(rec.Routing, skill.RoutingEntry{
			Response: e.Label,
			Workflow: "workflows/" + name + ".md",
		})
	}

	return rec
}

// nodeRole classifies a node by its style class, falling back to id
// substring heuristics. Substring checks run most-specific first so count
// nodes like skill_x_workflows resolve by suffix, not by the skill prefix.
func nodeRole(n diagram.Node) string {
	switch n.Type {
	case "skill", "principle", "workflow", "reference":
		return n.Type
	case "subgraph":
		return ""
	}

	switch {
	case strings.Contains(n.ID, "principle"):
		return "principle"
	case strings.Contains(n.ID, "workflow"):
		return "workflow"
	case strings.HasPrefix(n.ID, "ref"):
		return "reference"
	case strings.HasPrefix(n.ID, "skill"):
		return "skill"
	}
	return ""
}

// splitWorkflowLabel undoes the "name: truncated purpose" label format.
// A purpose that was truncated for display comes back truncated.
func splitWorkflowLabel(label string) (string, string) {
	if i := strings.Index(label, ": "); i >= 0 {
		return label[:i], label[i+2:]
	}
	return label, ""
}
