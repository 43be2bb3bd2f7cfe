package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("cv_image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["cv_image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestStorageSaveFile(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDir())

	header := makeFileHeader(t, "önéletrajz.jpg", []byte("fake image bytes"))

	filename, path, err := storage.SaveFile(header, "cv")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, filename), path)
	assert.Contains(t, filename, "cv_")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), content)
}

func TestStorageSaveFileRejectsUnknownExtension(t *testing.T) {
	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	header := makeFileHeader(t, "cv.exe", []byte("nope"))

	_, _, err := storage.SaveFile(header, "cv")
	assert.ErrorIs(t, err, ErrInvalidFileType)
}

func TestStorageSaveFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDir())

	header := makeFileHeader(t, "cv.png", []byte("png bytes"))
	_, _, err := storage.SaveFile(header, "cv")
	require.NoError(t, err)

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestStorageDeleteFile(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)
	require.NoError(t, storage.EnsureUploadDir())

	header := makeFileHeader(t, "cv.pdf", []byte("%PDF-1.4"))
	filename, path, err := storage.SaveFile(header, "cv")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(filename))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
