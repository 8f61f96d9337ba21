package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStorage creates a Storage rooted in a temporary directory.
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	tmpDir := t.TempDir()
	storage, err := NewStorage(tmpDir, "artist-images")
	require.NoError(t, err)
	return storage
}

func TestNewStorage(t *testing.T) {
	t.Run("creates storage with valid path", func(t *testing.T) {
		tmpDir := t.TempDir()

		storage, err := NewStorage(tmpDir, "artist-images")
		require.NoError(t, err)
		require.NotNil(t, storage)

		// Verify images directory was created.
		imagesPath := filepath.Join(tmpDir, "artist-images")
		info, err := os.Stat(imagesPath)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("returns error for empty base path", func(t *testing.T) {
		storage, err := NewStorage("", "artist-images")
		assert.Error(t, err)
		assert.Nil(t, storage)
		assert.Contains(t, err.Error(), "base path cannot be empty")
	})

	t.Run("returns error for empty subdirectory", func(t *testing.T) {
		storage, err := NewStorage(t.TempDir(), "")
		assert.Error(t, err)
		assert.Nil(t, storage)
		assert.Contains(t, err.Error(), "subdirectory cannot be empty")
	})

	t.Run("creates nested directories if needed", func(t *testing.T) {
		tmpDir := t.TempDir()
		nestedPath := filepath.Join(tmpDir, "nested", "path")

		storage, err := NewStorage(nestedPath, "artist-images")
		require.NoError(t, err)
		require.NotNil(t, storage)

		imagesPath := filepath.Join(nestedPath, "artist-images")
		info, err := os.Stat(imagesPath)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestStorage_Save(t *testing.T) {
	t.Run("saves image data successfully", func(t *testing.T) {
		storage := setupTestStorage(t)
		testData := []byte("test image data")

		err := storage.Save("img-123", testData)
		require.NoError(t, err)

		// Verify file was created.
		path := storage.Path("img-123")
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, testData, data)
	})

	t.Run("returns error for empty ID", func(t *testing.T) {
		storage := setupTestStorage(t)
		testData := []byte("test image data")

		err := storage.Save("", testData)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ID cannot be empty")
	})

	t.Run("returns error for empty image data", func(t *testing.T) {
		storage := setupTestStorage(t)

		err := storage.Save("img-123", []byte{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "image data cannot be empty")
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		storage := setupTestStorage(t)
		imageID := "img-123"

		// Save initial data.
		err := storage.Save(imageID, []byte("initial data"))
		require.NoError(t, err)

		// Overwrite with new data.
		newData := []byte("updated data")
		err = storage.Save(imageID, newData)
		require.NoError(t, err)

		// Verify new data was saved.
		data, err := storage.Get(imageID)
		require.NoError(t, err)
		assert.Equal(t, newData, data)
	})
}

func TestStorage_Get(t *testing.T) {
	t.Run("retrieves saved image data", func(t *testing.T) {
		storage := setupTestStorage(t)
		testData := []byte("test image data")
		imageID := "img-123"

		err := storage.Save(imageID, testData)
		require.NoError(t, err)

		data, err := storage.Get(imageID)
		require.NoError(t, err)
		assert.Equal(t, testData, data)
	})

	t.Run("returns error for non-existent image", func(t *testing.T) {
		storage := setupTestStorage(t)

		data, err := storage.Get("img-missing")
		assert.Error(t, err)
		assert.Nil(t, data)
		assert.Contains(t, err.Error(), "image not found")
	})

	t.Run("returns error for empty ID", func(t *testing.T) {
		storage := setupTestStorage(t)

		data, err := storage.Get("")
		assert.Error(t, err)
		assert.Nil(t, data)
		assert.Contains(t, err.Error(), "ID cannot be empty")
	})
}

func TestStorage_Exists(t *testing.T) {
	t.Run("returns true for existing image", func(t *testing.T) {
		storage := setupTestStorage(t)
		imageID := "img-123"

		err := storage.Save(imageID, []byte("test data"))
		require.NoError(t, err)

		assert.True(t, storage.Exists(imageID))
	})

	t.Run("returns false for non-existent image", func(t *testing.T) {
		storage := setupTestStorage(t)

		assert.False(t, storage.Exists("img-missing"))
	})

	t.Run("returns false for empty ID", func(t *testing.T) {
		storage := setupTestStorage(t)

		assert.False(t, storage.Exists(""))
	})
}

func TestStorage_Delete(t *testing.T) {
	t.Run("deletes existing image", func(t *testing.T) {
		storage := setupTestStorage(t)
		imageID := "img-123"

		err := storage.Save(imageID, []byte("test data"))
		require.NoError(t, err)
		require.True(t, storage.Exists(imageID))

		err = storage.Delete(imageID)
		require.NoError(t, err)
		assert.False(t, storage.Exists(imageID))
	})

	t.Run("succeeds when image does not exist", func(t *testing.T) {
		storage := setupTestStorage(t)

		err := storage.Delete("img-missing")
		assert.NoError(t, err) // Not an error to delete non-existent file.
	})

	t.Run("returns error for empty ID", func(t *testing.T) {
		storage := setupTestStorage(t)

		err := storage.Delete("")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ID cannot be empty")
	})
}

func TestStorage_Hash(t *testing.T) {
	t.Run("computes consistent hash", func(t *testing.T) {
		storage := setupTestStorage(t)
		imageID := "img-123"
		testData := []byte("test image data")

		err := storage.Save(imageID, testData)
		require.NoError(t, err)

		hash1, err := storage.Hash(imageID)
		require.NoError(t, err)
		assert.NotEmpty(t, hash1)

		// Hash should be consistent.
		hash2, err := storage.Hash(imageID)
		require.NoError(t, err)
		assert.Equal(t, hash1, hash2)

		// Hash should be 64 characters (SHA256 hex).
		assert.Len(t, hash1, 64)
	})

	t.Run("different data produces different hash", func(t *testing.T) {
		storage := setupTestStorage(t)

		err := storage.Save("img-1", []byte("data1"))
		require.NoError(t, err)

		err = storage.Save("img-2", []byte("data2"))
		require.NoError(t, err)

		hash1, err := storage.Hash("img-1")
		require.NoError(t, err)

		hash2, err := storage.Hash("img-2")
		require.NoError(t, err)

		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("returns error for non-existent image", func(t *testing.T) {
		storage := setupTestStorage(t)

		hash, err := storage.Hash("img-missing")
		assert.Error(t, err)
		assert.Empty(t, hash)
	})

	t.Run("returns error for empty ID", func(t *testing.T) {
		storage := setupTestStorage(t)

		hash, err := storage.Hash("")
		assert.Error(t, err)
		assert.Empty(t, hash)
	})
}

func TestStorage_Path(t *testing.T) {
	t.Run("generates correct path", func(t *testing.T) {
		tmpDir := t.TempDir()
		storage, err := NewStorage(tmpDir, "artist-images")
		require.NoError(t, err)

		path := storage.Path("img-123")
		expected := filepath.Join(tmpDir, "artist-images", "img-123.jpg")
		assert.Equal(t, expected, path)
	})
}

func TestStorage_BasePath(t *testing.T) {
	tmpDir := t.TempDir()
	storage, err := NewStorage(tmpDir, "artist-images")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "artist-images"), storage.BasePath())
}
