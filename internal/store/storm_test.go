package store_test

import (
	"os"
	"testing"

	"github.com/markpad/markpad/internal/model"
	"github.com/markpad/markpad/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (db store.Client, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "markpad.*.db")
	require.NoError(t, err)
	filename := tmpfile.Name()
	tmpfile.Close()

	db, err = store.StormOpen(filename)
	require.NoError(t, err)

	return db, func() {
		db.Close()
		os.RemoveAll(filename)
	}
}

func TestKVGetDefault(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	assert.Equal(t, "fallback", db.Get("missing", "fallback"))
}

func TestKVSetGet(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	db.Set(store.EditorContentKey, "# Hi")
	assert.Equal(t, "# Hi", db.Get(store.EditorContentKey, ""))
}

func TestKVUpdate(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	db.Update("counter", func(prev string) string {
		return prev + "x"
	}, "")
	db.Update("counter", func(prev string) string {
		return prev + "x"
	}, "")

	assert.Equal(t, "xx", db.Get("counter", ""))
}

func TestKVUpdateUsesDefault(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	db.Update("greeting", func(prev string) string {
		return prev + ", world"
	}, "hello")

	assert.Equal(t, "hello, world", db.Get("greeting", ""))
}

func TestDraftLifecycle(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	draft := &model.Draft{Title: "T", Content: "# Hi", Tags: "demo"}
	require.NoError(t, db.SaveDraft(draft))
	assert.NotEmpty(t, draft.ID)
	assert.NotNil(t, draft.CreatedAt)
	assert.NotNil(t, draft.UpdatedAt)

	found, err := db.FindDraft(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", found.Title)
	assert.Equal(t, "# Hi", found.Content)

	drafts, err := db.AllDrafts()
	require.NoError(t, err)
	assert.Len(t, drafts, 1)

	require.NoError(t, db.DeleteDraft(draft.ID))

	_, err = db.FindDraft(draft.ID)
	assert.True(t, db.IsNotFound(err))

	drafts, err = db.AllDrafts()
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestDraftUpdateKeepsID(t *testing.T) {
	db, cleanup := setup(t)
	defer cleanup()

	draft := &model.Draft{Title: "T", Content: "v1"}
	require.NoError(t, db.SaveDraft(draft))
	id := draft.ID

	draft.Content = "v2"
	require.NoError(t, db.SaveDraft(draft))
	assert.Equal(t, id, draft.ID)

	found, err := db.FindDraft(id)
	require.NoError(t, err)
	assert.Equal(t, "v2", found.Content)
}
