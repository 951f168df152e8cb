package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesParentDirectories(t *testing.T) {
	root := t.TempDir()
	w := NewFileWriter(root)

	require.NoError(t, w.Write(filepath.Join("dist", "pages", "index.html"), []byte("<div></div>")))

	data, err := os.ReadFile(filepath.Join(root, "dist", "pages", "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<div></div>", string(data))
}

func TestWriteWithoutRootUsesPathAsGiven(t *testing.T) {
	dir := t.TempDir()
	w := &FileWriter{}

	path := filepath.Join(dir, "out.css")
	require.NoError(t, w.Write(path, []byte(".a{}")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ".a{}", string(data))
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	root := t.TempDir()
	w := NewFileWriter(root)

	require.NoError(t, w.Write("page.html", []byte("old")))
	require.NoError(t, w.Write("page.html", []byte("new")))

	data, err := os.ReadFile(filepath.Join(root, "page.html"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}
