// Package export reconstructs skill document text from diagrams. Exports
// prefer the original parsed record carried in the diagram metadata and
// fall back to a record re-derived from the diagram's graph structure; the
// chosen path is reported as an explicit Fidelity value so callers can
// detect lossy exports instead of silently degrading.
package export

import (
	"fmt"

	"github.com/infinitty-dev/skillflow/pkg/diagram"
	"github.com/infinitty-dev/skillflow/pkg/skill"
	"github.com/pkg/errors"
)

// Fidelity reports which data source backed an export.
type Fidelity int

const (
	// FidelityExact means every exported field came from the original
	// parsed record.
	FidelityExact Fidelity = iota
	// FidelityApproximate means at least one field was reconstructed from
	// the graph view, which never carries principle prose.
	FidelityApproximate
)

func (f Fidelity) String() string {
	if f == FidelityExact {
		return "exact"
	}
	return "approximate"
}

// Options controls export rendering.
type Options struct {
	// Placeholders substitutes a comment for principle content the graph
	// view could not preserve.
	Placeholders bool
}

// Document is one exported skill document.
type Document struct {
	Name    string
	Content string
}

// Export renders a single-skill diagram back into document text. Fields
// present on the original record are used verbatim; absent fields are
// filled from the parsed graph.
func Export(d *diagram.Diagram, opts Options) (string, Fidelity, error) {
	record, fidelity, err := resolveRecord(d)
	if err != nil {
		return "", fidelity, err
	}

	text, err := render(record, opts)
	if err != nil {
		return "", fidelity, err
	}
	return text, fidelity, nil
}

// ExportBatch renders a skills-directory diagram into one document per
// original record, named from each record's frontmatter name with a
// positional fallback. With no original records the whole diagram is
// exported as a single graph-derived document.
func ExportBatch(d *diagram.Diagram, opts Options) ([]Document, Fidelity, error) {
	if len(d.Metadata.OriginalBatch) == 0 {
		text, fidelity, err := Export(d, opts)
		if err != nil {
			return nil, fidelity, err
		}
		return []Document{{Name: documentName(nil, 0), Content: text}}, fidelity, nil
	}

	docs := make([]Document, 0, len(d.Metadata.OriginalBatch))
	for i, record := range d.Metadata.OriginalBatch {
		text, err := render(record, opts)
		if err != nil {
			return nil, FidelityExact, errors.Wrapf(err, "failed to export skill %d", i+1)
		}
		docs = append(docs, Document{Name: documentName(record, i), Content: text})
	}
	return docs, FidelityExact, nil
}

// AutoExport dispatches on the diagram's source type. An unrecognized
// source type is a fatal error, never a silent fallback.
func AutoExport(d *diagram.Diagram, opts Options) ([]Document, Fidelity, error) {
	switch d.Metadata.SourceType {
	case diagram.SourceSkill:
		text, fidelity, err := Export(d, opts)
		if err != nil {
			return nil, fidelity, err
		}
		return []Document{{Name: documentName(d.Metadata.Original, 0), Content: text}}, fidelity, nil

	case diagram.SourceSkillsDirectory:
		return ExportBatch(d, opts)

	default:
		return nil, FidelityApproximate, errors.Errorf("unknown source type: %s", d.Metadata.SourceType)
	}
}

// resolveRecord merges the original record with graph-derived data
// field-by-field, reporting approximate fidelity whenever a graph-derived
// field had to fill a gap.
func resolveRecord(d *diagram.Diagram) (*skill.ParsedSkill, Fidelity, error) {
	orig := d.Metadata.Original

	if orig != nil && recordComplete(orig) {
		return orig, FidelityExact, nil
	}

	graph, err := diagram.ParseFlowchart(d.Source)
	if err != nil {
		return nil, FidelityApproximate, errors.Wrap(err, "failed to parse diagram source")
	}
	derived := fromGraph(graph)

	if orig == nil {
		return derived, FidelityApproximate, nil
	}

	merged := *orig
	fidelity := FidelityExact
	if merged.Frontmatter.Name == "" && derived.Frontmatter.Name != "" {
		merged.Frontmatter.Name = derived.Frontmatter.Name
		fidelity = FidelityApproximate
	}
	if len(merged.Principles) == 0 && len(derived.Principles) > 0 {
		merged.Principles = derived.Principles
		fidelity = FidelityApproximate
	}
	if len(merged.Workflows) == 0 && len(derived.Workflows) > 0 {
		merged.Workflows = derived.Workflows
		fidelity = FidelityApproximate
	}
	if len(merged.References) == 0 && len(derived.References) > 0 {
		merged.References = derived.References
		fidelity = FidelityApproximate
	}
	if len(merged.Routing) == 0 && len(derived.Routing) > 0 {
		merged.Routing = derived.Routing
		fidelity = FidelityApproximate
	}
	return &merged, fidelity, nil
}

// recordComplete reports whether the original record can satisfy every
// exported section on its own, making the graph parse unnecessary.
func recordComplete(s *skill.ParsedSkill) bool {
	return s.Frontmatter.Name != "" &&
		len(s.Principles) > 0 &&
		len(s.Workflows) > 0 &&
		len(s.References) > 0 &&
		len(s.Routing) > 0
}

func documentName(s *skill.ParsedSkill, index int) string {
	if s != nil && s.Frontmatter.Name != "" {
		return s.Frontmatter.Name
	}
	return fmt.Sprintf("skill-%d", index+1)
}
