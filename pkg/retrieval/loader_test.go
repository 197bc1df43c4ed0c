package retrieval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocumentsFromDir(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	writeFile("fitness.md", "# Fitness plan\nRun three times a week.")
	writeFile("recipes.txt", "Pasta: boil water.")
	writeFile("ignore.pdf", "binary-ish")
	writeFile("empty.md", "   \n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	docs, err := LoadDocumentsFromDir(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "fitness.md", docs[0].Source)
	assert.Contains(t, docs[0].Content, "Fitness plan")
	assert.Equal(t, "recipes.txt", docs[1].Source)
}

func TestLoadDocumentsFromMissingDir(t *testing.T) {
	_, err := LoadDocumentsFromDir("/does/not/exist")
	require.Error(t, err)
}
