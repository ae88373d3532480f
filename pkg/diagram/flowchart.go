package diagram

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Line grammar of the flowchart dialect this package emits. The reader is
// a generic structural parse: it recovers nodes, subgraph nesting and
// edges, with no skill-domain interpretation.
var (
	subgraphRe    = regexp.MustCompile(`^subgraph\s+([A-Za-z0-9_]+)(?:\["([^"]*)"\])?\s*$`)
	nodeRe        = regexp.MustCompile(`^([A-Za-z0-9_]+)\["([^"]*)"\](?::::([A-Za-z0-9_]+))?\s*$`)
	labeledEdgeRe = regexp.MustCompile(`^([A-Za-z0-9_]+)\s*-->\s*\|"([^"]*)"\|\s*([A-Za-z0-9_]+)\s*$`)
	plainEdgeRe   = regexp.MustCompile(`^([A-Za-z0-9_]+)\s*-->\s*([A-Za-z0-9_]+)\s*$`)
)

// ParseFlowchart reads flowchart source into the Graph view. Subgraphs are
// recorded as nodes of type "subgraph" and set as ParentID on the nodes
// they enclose. Header, classDef and comment lines are skipped; lines that
// match no production are ignored rather than fatal, so hand-edited
// diagrams still parse.
func ParseFlowchart(source string) (*Graph, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("empty diagram source")
	}

	graph := &Graph{}
	var stack []string

	parent := func() string {
		if len(stack) == 0 {
			return ""
		}
		return stack[len(stack)-1]
	}

	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case line == "", strings.HasPrefix(line, "%%"),
			strings.HasPrefix(line, "flowchart"),
			strings.HasPrefix(line, "classDef"):
			continue

		case line == "end":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case subgraphRe.MatchString(line):
			m := subgraphRe.FindStringSubmatch(line)
			graph.Nodes = append(graph.Nodes, Node{
				ID:       m[1],
				Data:     m[2],
				Type:     "subgraph",
				ParentID: parent(),
			})
			stack = append(stack, m[1])

		case labeledEdgeRe.MatchString(line):
			m := labeledEdgeRe.FindStringSubmatch(line)
			graph.Edges = append(graph.Edges, Edge{Source: m[1], Target: m[3], Label: m[2]})

		case plainEdgeRe.MatchString(line):
			m := plainEdgeRe.FindStringSubmatch(line)
			graph.Edges = append(graph.Edges, Edge{Source: m[1], Target: m[2]})

		case nodeRe.MatchString(line):
			m := nodeRe.FindStringSubmatch(line)
			graph.Nodes = append(graph.Nodes, Node{
				ID:       m[1],
				Data:     m[2],
				Type:     m[3],
				ParentID: parent(),
			})
		}
	}

	return graph, nil
}
