package store

import (
	"github.com/markpad/markpad/internal/model"
)

// EditorContentKey is the single key holding the JSON-serialized
// markdown source written by the autosave scheduler.
const EditorContentKey = "editor.content"

// ThemeKey holds the persisted theme name.
const ThemeKey = "editor.theme"

type (
	// A Client can interact with the local database.
	//
	// The key-value operations are deliberately infallible: a read miss
	// or decode failure yields the provided default and a write failure
	// is logged and swallowed. The editor must keep working even when
	// durable persistence is broken.
	Client interface {
		// Get returns the value stored under key, or def on miss or
		// deserialization failure.
		Get(key, def string) string
		// Set stores value under key.
		Set(key, value string)
		// Update stores the result of applying fn to the previous value
		// under key. The previous value defaults to def on miss.
		Update(key string, fn func(prev string) string, def string)

		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool

		DraftInteraction
	}

	// A DraftInteraction defines all the methods used to interact with
	// draft records.
	DraftInteraction interface {
		// SaveDraft inserts or updates the draft in database.
		SaveDraft(d *model.Draft) error
		// FindDraft returns the draft for the given id (UUID).
		FindDraft(id string) (*model.Draft, error)
		// AllDrafts returns all drafts ordered by creation date.
		AllDrafts() ([]*model.Draft, error)
		// DeleteDraft deletes the draft for the given id.
		DeleteDraft(id string) error
	}
)
