// Package diagram renders parsed skill records into Mermaid flowchart
// diagrams and reads flowchart source back into a generic graph view for
// structural analysis. The diagram text is a human-editable intermediate
// representation; metadata attached to each diagram carries the original
// parsed record so that exports can stay lossless.
package diagram

import (
	"time"

	"github.com/infinitty-dev/skillflow/pkg/skill"
)

// SourceType identifies what a diagram was generated from.
type SourceType string

const (
	// SourceSkill marks a diagram rendered from a single skill document.
	SourceSkill SourceType = "skill"
	// SourceSkillsDirectory marks a diagram rendered from a directory of skills.
	SourceSkillsDirectory SourceType = "skills-directory"
)

// TypeFlowchart is the only diagram type currently produced.
const TypeFlowchart = "flowchart"

// Diagram is a rendered diagram plus the metadata needed to re-derive the
// source document.
type Diagram struct {
	Source   string   `json:"source"`
	Type     string   `json:"type"`
	Metadata Metadata `json:"metadata"`
}

// Metadata records provenance and, when available, the original parsed
// record(s). Original is set for SourceSkill, OriginalBatch for
// SourceSkillsDirectory. Exports prefer these over graph-derived data.
type Metadata struct {
	SourceType    SourceType           `json:"sourceType"`
	SourcePath    string               `json:"sourcePath,omitempty"`
	GeneratedAt   time.Time            `json:"generatedAt"`
	Version       string               `json:"version,omitempty"`
	Original      *skill.ParsedSkill   `json:"originalData,omitempty"`
	OriginalBatch []*skill.ParsedSkill `json:"originalBatch,omitempty"`
}

// Graph is the lossy structural view of a diagram: node and edge labels
// encode only names and truncated purposes, never principle prose.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one flowchart node. Type is the node's style class when present,
// ParentID the enclosing subgraph.
type Node struct {
	ID       string `json:"id"`
	Data     string `json:"data"`
	Type     string `json:"type,omitempty"`
	ParentID string `json:"parentId,omitempty"`
}

// Edge is a directed connection between two nodes, optionally labeled.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}
