package workflows

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/infinitty-dev/skillflow/pkg/logger"
	"github.com/pkg/errors"
)

const fileSuffix = ".workflow.json"

// DirEnvVar overrides the workflow storage directory when set.
const DirEnvVar = "SKILLFLOW_WORKFLOWS_DIR"

// DefaultDir resolves the workflow storage directory: the environment
// override when present, otherwise ~/.skillflow/workflows.
func DefaultDir() (string, error) {
	if dir := os.Getenv(DirEnvVar); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(homeDir, ".skillflow", "workflows"), nil
}

// Store is a JSON file-based workflow store.
type Store struct {
	basePath string
}

// NewStore creates a store rooted at basePath, creating the directory when
// missing. An empty basePath uses DefaultDir.
func NewStore(basePath string) (*Store, error) {
	if basePath == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		basePath = dir
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create workflows directory")
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) filePath(id string) string {
	return filepath.Join(s.basePath, id+fileSuffix)
}

// Save persists a workflow record, assigning an ID when missing and
// touching UpdatedAt. The write goes through a temporary file and rename
// so a crash never leaves a truncated document behind.
func (s *Store) Save(record Record) (Record, error) {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return Record{}, errors.Wrap(err, "failed to marshal workflow record")
	}

	filePath := s.filePath(record.ID)
	tempPath := filePath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return Record{}, errors.Wrap(err, "failed to write temporary workflow file")
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		os.Remove(tempPath)
		return Record{}, errors.Wrap(err, "failed to rename temporary workflow file")
	}

	return record, nil
}

// Load retrieves a workflow by ID. A missing ID is a fatal descriptive
// error.
func (s *Store) Load(id string) (Record, error) {
	data, err := os.ReadFile(s.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, errors.Errorf("workflow not found: %s", id)
		}
		return Record{}, errors.Wrap(err, "failed to read workflow file")
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, errors.Wrap(err, "failed to unmarshal workflow record")
	}
	return record, nil
}

// Delete removes a workflow. A missing ID is a fatal descriptive error.
func (s *Store) Delete(id string) error {
	err := os.Remove(s.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("workflow not found: %s", id)
		}
		return errors.Wrap(err, "failed to delete workflow file")
	}
	return nil
}

// List returns summaries of all stored workflows sorted by last-updated
// timestamp descending. Unreadable entries are skipped, not fatal.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read workflows directory")
	}

	var summaries []Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}

		path := filepath.Join(s.basePath, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.G(ctx).WithField("path", path).WithError(err).Warn("skipping unreadable workflow file")
			continue
		}

		var record Record
		if err := json.Unmarshal(data, &record); err != nil {
			logger.G(ctx).WithField("path", path).WithError(err).Warn("skipping malformed workflow file")
			continue
		}
		summaries = append(summaries, record.ToSummary())
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}
