package diagram

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/infinitty-dev/skillflow/pkg/skill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSkill(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nname: gen-test\ndescription: generated\n---\n\n# Gen\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, skill.SkillFileName), []byte(doc), 0o644))

	d, err := Generate(context.Background(), dir, SourceSkill)
	require.NoError(t, err)
	assert.Equal(t, SourceSkill, d.Metadata.SourceType)
	assert.Contains(t, d.Source, `skill_gen_test["gen-test"]:::skill`)
}

func TestGenerateSkillsDirectory(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"alpha", "beta"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		doc := "---\nname: " + name + "\n---\n\n# " + name + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, skill.SkillFileName), []byte(doc), 0o644))
	}

	d, err := Generate(context.Background(), root, SourceSkillsDirectory)
	require.NoError(t, err)
	assert.Equal(t, SourceSkillsDirectory, d.Metadata.SourceType)
	assert.Len(t, d.Metadata.OriginalBatch, 2)
	assert.Contains(t, d.Source, `subgraph skill_alpha["alpha"]`)
	assert.Contains(t, d.Source, `subgraph skill_beta["beta"]`)
}

func TestGenerateUnknownSourceType(t *testing.T) {
	_, err := Generate(context.Background(), ".", SourceType("settings"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source type")
}

func TestGenerateMissingSkillIsFatal(t *testing.T) {
	_, err := Generate(context.Background(), filepath.Join(t.TempDir(), "absent"), SourceSkill)
	require.Error(t, err)
}
