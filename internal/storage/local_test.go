package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorage_SaveOpenDelete(t *testing.T) {
	t.Parallel()

	fs, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	err = fs.SaveByKey(strings.NewReader("payload"), "key1.png", "original.png", "image/png")
	require.NoError(t, err)

	r, err := fs.OpenFileByKey("key1.png")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "payload", string(data))

	require.NoError(t, fs.DeleteByKey("key1.png"))

	_, err = fs.OpenFileByKey("key1.png")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLocalFileStorage_DeleteMissing(t *testing.T) {
	t.Parallel()

	fs, err := NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, fs.DeleteByKey("nope.png"), ErrFileNotFound)
}
