package store

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/json"
	"github.com/gofrs/uuid"
	"github.com/markpad/markpad/internal/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const kvBucket = "markpad"

type strm struct {
	db *storm.DB
}

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(json.Codec)

// StormInit initializes Storm database.
func StormInit(database string) error {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return errors.Wrap(err, "could not get database connection")
	}
	defer db.Close()

	err = db.Init(&model.Draft{})
	return errors.Wrap(err, "could not init draft index")
}

// StormOpen returns a new Storm database connection.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	return &strm{
		db: db,
	}, nil
}

// Get returns the value stored under key, or def on miss or decode failure.
func (c *strm) Get(key, def string) string {
	var value string
	if err := c.db.Get(kvBucket, key, &value); err != nil {
		if err != storm.ErrNotFound {
			logrus.WithError(err).WithField("key", key).Error("could not read local value")
		}
		return def
	}
	return value
}

// Set stores value under key. Failures are logged and swallowed.
func (c *strm) Set(key, value string) {
	if err := c.db.Set(kvBucket, key, value); err != nil {
		logrus.WithError(err).WithField("key", key).Error("could not persist local value")
	}
}

// Update stores the result of applying fn to the previous value under key.
func (c *strm) Update(key string, fn func(prev string) string, def string) {
	c.Set(key, fn(c.Get(key, def)))
}

// SaveDraft inserts or updates the draft in database.
func (c *strm) SaveDraft(d *model.Draft) error {
	t := time.Now().UTC()
	d.SetUpdatedAt(t)

	if d.GetID() == "" {
		d.SetID(uuid.Must(uuid.NewV4()).String())
		d.SetCreatedAt(t)
	}

	return errors.Wrap(c.db.Save(d), "could not save the draft")
}

// FindDraft returns the draft for the given id (UUID).
func (c *strm) FindDraft(id string) (*model.Draft, error) {
	var draft model.Draft
	if err := c.db.One("ID", id, &draft); err != nil {
		return nil, errors.Wrap(err, "find draft by id")
	}
	return &draft, nil
}

// AllDrafts returns all drafts ordered by creation date.
func (c *strm) AllDrafts() ([]*model.Draft, error) {
	drafts := make([]*model.Draft, 0)
	err := c.db.AllByIndex("CreatedAt", &drafts)
	if err != nil && err != storm.ErrNotFound {
		return nil, errors.Wrap(err, "find all drafts")
	}
	return drafts, nil
}

// DeleteDraft deletes the draft for the given id.
func (c *strm) DeleteDraft(id string) error {
	draft, err := c.FindDraft(id)
	if err != nil {
		return err
	}
	return errors.Wrap(c.db.DeleteStruct(draft), "could not delete the draft")
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}
