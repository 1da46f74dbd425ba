package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/session"
	"tasklist/internal/taskstore"
	"tasklist/internal/testutil"
)

func TestOpen_LoadsStoredTasks(t *testing.T) {
	st := testutil.NewMemoryStorage()
	st.Put(taskstore.StorageKey, `[{"text":"a","completed":true}]`)

	sess, err := session.Open(context.Background(), st, nil)
	require.NoError(t, err)

	row, ok := sess.Row(1)
	require.True(t, ok)
	assert.Equal(t, "a", row.Text())
	assert.True(t, row.Completed())
}

func TestOpen_InputIsWired(t *testing.T) {
	st := testutil.NewMemoryStorage()
	sess, err := session.Open(context.Background(), st, nil)
	require.NoError(t, err)

	sess.Input.SetValue("typed")
	added, err := sess.Store.Submit(context.Background())

	require.NoError(t, err)
	assert.True(t, added)
	assert.Empty(t, sess.Input.Value())
	assert.Equal(t, 1, sess.List.Len())
}

func TestOpen_LoadFailureStillUsable(t *testing.T) {
	st := testutil.NewMemoryStorage()
	st.GetErr = errors.New("unavailable")

	sess, err := session.Open(context.Background(), st, nil)

	assert.ErrorIs(t, err, taskstore.ErrStorage)
	require.NotNil(t, sess)
	assert.Equal(t, 0, sess.List.Len())
}
