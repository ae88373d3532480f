package skill

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/infinitty-dev/skillflow/pkg/logger"
	"github.com/pkg/errors"
)

// SkippedEntry records a directory entry that was not parsed as a skill,
// with the reason it was skipped.
type SkippedEntry struct {
	Path   string
	Reason error
}

// DirectoryResult is the outcome of a batch parse. Skipped entries never
// abort the batch; they are collected here so callers can inspect fidelity
// loss instead of having failures silently swallowed.
type DirectoryResult struct {
	Skills  []*ParsedSkill
	Skipped []SkippedEntry
}

// Err aggregates the skip reasons, or nil when nothing was skipped.
func (r *DirectoryResult) Err() error {
	var merr *multierror.Error
	for _, s := range r.Skipped {
		merr = multierror.Append(merr, errors.Wrap(s.Reason, s.Path))
	}
	return merr.ErrorOrNil()
}

// ParseDirectory parses every skill under path: immediate subdirectories
// containing SKILL.md, plus loose sibling markdown files (excluding
// README.md) treated as single-document skills. Entries that fail to parse
// are skipped and recorded, not fatal to the batch. Only an unreadable
// root directory is an error.
func ParseDirectory(ctx context.Context, path string) (*DirectoryResult, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read skills directory %s", path)
	}

	log := logger.G(ctx).WithField("directory", path)
	result := &DirectoryResult{}

	for _, entry := range entries {
		entryPath := filepath.Join(path, entry.Name())

		switch {
		case entry.IsDir():
			parsed, err := Parse(ctx, entryPath)
			if err != nil {
				log.WithField("entry", entry.Name()).WithError(err).Debug("skipping directory entry")
				result.Skipped = append(result.Skipped, SkippedEntry{Path: entryPath, Reason: err})
				continue
			}
			result.Skills = append(result.Skills, parsed)

		case strings.HasSuffix(entry.Name(), ".md") && entry.Name() != "README.md":
			parsed, err := Parse(ctx, entryPath)
			if err != nil {
				log.WithField("entry", entry.Name()).WithError(err).Debug("skipping markdown entry")
				result.Skipped = append(result.Skipped, SkippedEntry{Path: entryPath, Reason: err})
				continue
			}
			result.Skills = append(result.Skills, parsed)
		}
	}

	return result, nil
}
