package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x12, 0x34, 0x56, 0x78})

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, 4, len(data))
		assert.Equal(t, byte(0x12), data[0])
		assert.Equal(t, byte(0x78), data[3])
	})

	t.Run("load empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		data, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(data))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load("/nonexistent/file.ch8")
		assert.Error(t, err)
	})

	t.Run("error on oversized file", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, chip8.MaxROMSize+1))

		_, err := New().Load(tmpFile)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, chip8.ErrOutOfMemory))
	})
}

func TestLoadFromReader(t *testing.T) {
	data, err := New().LoadFromReader(bytes.NewReader(make([]byte, chip8.MaxROMSize)))
	assert.NoError(t, err)
	assert.Equal(t, chip8.MaxROMSize, len(data))
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
