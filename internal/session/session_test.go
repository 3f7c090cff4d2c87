package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roseloverx/tdcache/internal/session"
)

func TestStorage_Store(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "session.json")

	storage := session.NewFromFile(storePath)
	err := storage.Store(&session.Session{
		Version: "1.4.0",
		UserID:  777000,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(storePath)
	require.NoError(t, err)

	assert.Equal(t, `{"version":"1.4.0","user_id":777000}`, string(data))
}

func TestStorage_Load(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "session.json")
	tmpData := `{"version":"1.4.0","user_id":777000}`
	require.NoError(t, os.WriteFile(storePath, []byte(tmpData), 0o666))

	storage := session.NewFromFile(storePath)

	sess, err := storage.Load()
	require.NoError(t, err)

	assert.Equal(t, &session.Session{
		Version: "1.4.0",
		UserID:  777000,
	}, sess)
}

func TestStorage_DeleteMissingFile(t *testing.T) {
	storage := session.NewFromFile(filepath.Join(t.TempDir(), "session.json"))
	assert.NoError(t, storage.Delete())
}
