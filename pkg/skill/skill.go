// Package skill parses structured skill documents into an intermediate
// record used by the diagram and export pipelines. Skills are packaged as
// directories containing a SKILL.md file with YAML frontmatter, custom
// inline tags (<principle>, <intake>, <routing>, <workflows_index>) and
// optional sibling references/ and workflows/ directories.
package skill

// Frontmatter holds the YAML metadata block of a skill document. Name is
// required for downstream diagram rendering; everything else is optional.
type Frontmatter struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Principle is a named prose block extracted from a
// <principle name="...">...</principle> tag.
type Principle struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// RoutingEntry maps a response/condition string to a workflow reference.
type RoutingEntry struct {
	Response string `json:"response"`
	Workflow string `json:"workflow"`
}

// Reference points to a sibling reference document under references/.
type Reference struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// WorkflowRef points to a sibling workflow document under workflows/,
// optionally annotated with a purpose string recovered from the
// <workflows_index> table.
type WorkflowRef struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Purpose string `json:"purpose,omitempty"`
}

// ParsedSkill is the canonical intermediate record for one skill document.
// References and Workflows are filesystem-derived, not content-derived: a
// document whose sibling directories are missing always has empty lists
// regardless of what its body mentions. Records are immutable after
// creation and rebuilt from scratch on every parse call.
type ParsedSkill struct {
	Frontmatter Frontmatter    `json:"frontmatter"`
	Principles  []Principle    `json:"principles,omitempty"`
	Intake      string         `json:"intake,omitempty"`
	Routing     []RoutingEntry `json:"routing,omitempty"`
	References  []Reference    `json:"references,omitempty"`
	Workflows   []WorkflowRef  `json:"workflows,omitempty"`
	RawContent  string         `json:"rawContent,omitempty"`
}
