package diagram

import (
	"context"

	"github.com/infinitty-dev/skillflow/pkg/logger"
	"github.com/infinitty-dev/skillflow/pkg/skill"
	"github.com/pkg/errors"
)

// Generate is the pipeline entry point: it parses path according to
// sourceType and projects the result into a diagram. An unknown source
// type is a fatal error.
func Generate(ctx context.Context, path string, sourceType SourceType) (*Diagram, error) {
	switch sourceType {
	case SourceSkill:
		parsed, err := skill.Parse(ctx, path)
		if err != nil {
			return nil, err
		}
		return FromSkill(parsed, path), nil

	case SourceSkillsDirectory:
		result, err := skill.ParseDirectory(ctx, path)
		if err != nil {
			return nil, err
		}
		if skipErr := result.Err(); skipErr != nil {
			logger.G(ctx).WithError(skipErr).Debug("entries skipped during batch parse")
		}
		return FromSkills(result.Skills, path), nil

	default:
		return nil, errors.Errorf("unknown source type: %s", sourceType)
	}
}
