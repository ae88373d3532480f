// Package workflows persists visual workflow documents as JSON files. Each
// workflow is stored as {id}.workflow.json under a configurable directory,
// defaulting to ~/.skillflow/workflows with an environment override.
package workflows

import (
	"time"
)

// Node is one node of a visual workflow graph.
type Node struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Position Position       `json:"position"`
	Data     map[string]any `json:"data,omitempty"`
}

// Position is a node's canvas placement.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Connection links two workflow nodes, optionally through named handles.
type Connection struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Record is one persisted workflow document.
type Record struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Version         string         `json:"version"`
	Description     string         `json:"description,omitempty"`
	Nodes           []Node         `json:"nodes"`
	Connections     []Connection   `json:"connections"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	Tags            []string       `json:"tags,omitempty"`
	ExecutionConfig map[string]any `json:"executionConfig,omitempty"`
}

// Summary is the listing view of a stored workflow.
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Description string    `json:"description,omitempty"`
	NodeCount   int       `json:"nodeCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tags        []string  `json:"tags,omitempty"`
}

// ToSummary projects a record into its listing view.
func (r Record) ToSummary() Summary {
	return Summary{
		ID:          r.ID,
		Name:        r.Name,
		Version:     r.Version,
		Description: r.Description,
		NodeCount:   len(r.Nodes),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Tags:        r.Tags,
	}
}
