package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaosdating/chaos-dating/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("profile_pic", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1 << 20))
	return req.MultipartForm.File["profile_pic"][0]
}

func TestPictureStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPictureStore(&config.StorageConfig{Path: dir})
	require.NoError(t, err)

	name, err := store.Save(uploadHeader(t, "me.JPG", []byte("fake image bytes")))
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(name))

	written, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), written)
}

func TestPictureStore_Save_RejectsUnknownExtension(t *testing.T) {
	store, err := NewPictureStore(&config.StorageConfig{Path: t.TempDir()})
	require.NoError(t, err)

	_, err = store.Save(uploadHeader(t, "evil.exe", []byte("nope")))
	assert.Error(t, err)
}

func TestPictureStore_NamesAreUnique(t *testing.T) {
	store, err := NewPictureStore(&config.StorageConfig{Path: t.TempDir()})
	require.NoError(t, err)

	first, err := store.Save(uploadHeader(t, "me.png", []byte("one")))
	require.NoError(t, err)
	second, err := store.Save(uploadHeader(t, "me.png", []byte("two")))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
