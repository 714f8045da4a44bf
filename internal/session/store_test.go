package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_SetGetHasDelete(t *testing.T) {
	store := NewStore()

	require.False(t, store.Has("s1"), "expected empty store")
	require.Nil(t, store.Get("s1"), "expected nil for absent id")

	sess := &Session{ID: "s1", CreatedAt: time.Now(), Status: StatusActive}
	store.Set("s1", sess)

	require.True(t, store.Has("s1"))
	require.Same(t, sess, store.Get("s1"), "Get must return the stored record")
	require.Equal(t, 1, store.Len())

	store.Delete("s1")
	require.False(t, store.Has("s1"), "expected session to be deleted")

	// Deleting again is a no-op.
	store.Delete("s1")
	require.Equal(t, 0, store.Len())
}

func TestStore_SetReplaces(t *testing.T) {
	store := NewStore()
	store.Set("s1", &Session{ID: "s1", Status: StatusActive})

	replacement := &Session{ID: "s1", Status: StatusComplete}
	store.Set("s1", replacement)

	require.Same(t, replacement, store.Get("s1"))
	require.Equal(t, 1, store.Len())
}

func TestSession_AppendTurn(t *testing.T) {
	sess := &Session{ID: "s1", Status: StatusActive}
	sess.AppendTurn(RolePatient, "hello")
	sess.AppendTurn(RoleAssistant, "hi there")

	require.Len(t, sess.History, 2)
	require.Equal(t, RolePatient, sess.History[0].Role)
	require.Equal(t, RoleAssistant, sess.History[1].Role)
	require.Equal(t, "hello", sess.History[0].Text)
}
