package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *ModelManager {
	t.Helper()
	mgr, err := NewModelManager(t.TempDir())
	require.NoError(t, err)
	return mgr
}

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestModelManager_AddListRemove(t *testing.T) {
	mgr := newManager(t)
	gen := writeArtifact(t, "gpt2.json", `{"order": 2}`)
	spam := writeArtifact(t, "spam.json", `{}`)

	m, err := mgr.AddLocalModel("gpt2", gen, KindGenerator)
	require.NoError(t, err)
	assert.Equal(t, int64(len(`{"order": 2}`)), m.Size)
	_, err = mgr.AddLocalModel("spam", spam, KindSpam)
	require.NoError(t, err)

	models, err := mgr.ListModels()
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "gpt2", models[0].Name)
	assert.Equal(t, KindGenerator, models[0].Kind)
	assert.Equal(t, "spam", models[1].Name)

	got, err := mgr.GetModel("spam")
	require.NoError(t, err)
	assert.Equal(t, spam, got.Path)

	require.NoError(t, mgr.RemoveModel("gpt2"))
	models, err = mgr.ListModels()
	require.NoError(t, err)
	assert.Len(t, models, 1)
}

func TestModelManager_AddMissingFile(t *testing.T) {
	mgr := newManager(t)
	_, err := mgr.AddLocalModel("gpt2", filepath.Join(t.TempDir(), "missing.json"), KindGenerator)
	assert.Error(t, err)
}

func TestModelManager_RejectsBadNames(t *testing.T) {
	mgr := newManager(t)
	path := writeArtifact(t, "m.json", `{}`)

	for _, name := range []string{"", "../escape", "a/b", ".."} {
		_, err := mgr.AddLocalModel(name, path, KindSpam)
		assert.Error(t, err, "name %q", name)
	}
}

func TestModelManager_ResolveModelPath(t *testing.T) {
	mgr := newManager(t)
	path := writeArtifact(t, "gpt2.json", `{}`)
	_, err := mgr.AddLocalModel("gpt2", path, KindGenerator)
	require.NoError(t, err)

	got, err := mgr.ResolveModelPath(path, KindGenerator)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	got, err = mgr.ResolveModelPath("gpt2", KindGenerator)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = mgr.ResolveModelPath("gpt2", KindSpam)
	assert.Error(t, err, "kind mismatch")

	_, err = mgr.ResolveModelPath("unknown", KindGenerator)
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("spam")
	require.NoError(t, err)
	assert.Equal(t, KindSpam, k)

	_, err = ParseKind("vision")
	assert.Error(t, err)
}
