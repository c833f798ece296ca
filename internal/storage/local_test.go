package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalRoundTrip(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("filter size 16x25x1")

	key, err := l.Put(ctx, "spec sheet.txt", bytes.NewReader(content))
	require.NoError(t, err)
	require.NotEmpty(t, key)
	require.NotContains(t, key, " ", "keys must be path-safe")

	rc, err := l.Get(ctx, key)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, content, got)

	require.NoError(t, l.Delete(ctx, key))
	_, err = l.Get(ctx, key)
	require.Error(t, err)
}

func TestLocalUniqueKeys(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	k1, err := l.Put(ctx, "same.txt", bytes.NewReader([]byte("a")))
	require.NoError(t, err)
	k2, err := l.Put(ctx, "same.txt", bytes.NewReader([]byte("b")))
	require.NoError(t, err)
	require.NotEqual(t, k1, k2, "same filename must not collide")
}
