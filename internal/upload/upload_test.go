package upload

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

// The stored path must stay under the public mount even when the directory on
// disk lives somewhere else entirely.
func TestSaveReturnsPublicPath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	got, err := store.Save(fileHeader(t, "lamp.png", []byte("png-bytes")))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(got, PublicPrefix+"/"), got)
	require.NotContains(t, got, dir)
	require.True(t, strings.HasSuffix(got, "-lamp.png"), got)

	onDisk := filepath.Join(dir, strings.TrimPrefix(got, PublicPrefix+"/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), data)
}

func TestNewStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
