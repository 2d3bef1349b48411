package editor

import (
	"strings"
	"sync"
	"time"

	"github.com/markpad/markpad/pkg/mdapi"
	"github.com/sirupsen/logrus"
)

// DefaultErrorDisplayDuration is how long a sync error stays visible
// before it is cleared automatically.
const DefaultErrorDisplayDuration = 5 * time.Second

// A SyncState is a snapshot of the orchestrator's bookkeeping.
type SyncState struct {
	Loading      bool                    `json:"is_loading"`
	LastError    string                  `json:"last_error,omitempty"`
	LastSyncTime *time.Time              `json:"last_sync_time,omitempty"`
	Documents    []mdapi.DocumentPreview `json:"documents"`
}

// A Syncer orchestrates remote operations and tracks their outcome.
//
// It does not serialize concurrent operations: two simultaneous calls
// both proceed and the last one to settle wins on the shared state.
type Syncer struct {
	mu       sync.Mutex
	client   mdapi.Client
	log      logrus.FieldLogger
	errTTL   time.Duration
	errTimer *time.Timer
	state    SyncState
}

// NewSyncer returns a Syncer driving the given client.
func NewSyncer(client mdapi.Client, log logrus.FieldLogger) *Syncer {
	return &Syncer{
		client: client,
		log:    log,
		errTTL: DefaultErrorDisplayDuration,
		state:  SyncState{Documents: make([]mdapi.DocumentPreview, 0)},
	}
}

// SetErrorDisplayDuration overrides how long errors stay visible.
func (s *Syncer) SetErrorDisplayDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errTTL = d
}

// State returns a snapshot of the current sync state.
func (s *Syncer) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	state.Documents = append([]mdapi.DocumentPreview(nil), s.state.Documents...)
	return state
}

// Save pushes a new document to the remote store.
// An empty document is rejected before any network call.
func (s *Syncer) Save(title, content, tags string) mdapi.Result {
	if strings.TrimSpace(content) == "" {
		return mdapi.Result{Success: false, Message: "Cannot save an empty document", Err: "validation"}
	}

	defer s.loading()()

	res := s.client.Save(title, content, tags)
	s.settle(res)
	return res
}

// Load fetches a document from the remote store.
func (s *Syncer) Load(id string) mdapi.Result {
	defer s.loading()()

	res := s.client.Load(id)
	s.settle(res)
	return res
}

// List refreshes the locally known remote documents. On success the
// cached list is replaced wholesale.
func (s *Syncer) List(limit int) mdapi.Result {
	defer s.loading()()

	res := s.client.List(limit)
	s.settle(res)

	if res.Success {
		previews, ok := res.Data.([]mdapi.DocumentPreview)
		if ok {
			// Keep an own copy, the caller is free to mutate res.Data.
			s.mu.Lock()
			s.state.Documents = append([]mdapi.DocumentPreview(nil), previews...)
			s.mu.Unlock()
		}
	}
	return res
}

// Update replaces a document on the remote store.
func (s *Syncer) Update(id, title, content, tags string) mdapi.Result {
	if strings.TrimSpace(content) == "" {
		return mdapi.Result{Success: false, Message: "Cannot save an empty document", Err: "validation"}
	}

	defer s.loading()()

	res := s.client.Update(id, title, content, tags)
	s.settle(res)
	return res
}

// Delete removes a document from the remote store and drops it from the
// cached list. The editor content is never touched.
func (s *Syncer) Delete(id string) mdapi.Result {
	defer s.loading()()

	res := s.client.Delete(id)
	s.settle(res)

	if res.Success {
		s.mu.Lock()
		documents := s.state.Documents[:0]
		for _, d := range s.state.Documents {
			if d.ID != id {
				documents = append(documents, d)
			}
		}
		s.state.Documents = documents
		s.mu.Unlock()
	}
	return res
}

// loading flips the loading flag and returns the cleanup restoring it.
// Running the cleanup through defer guarantees the flag cannot stay
// stuck true, whatever the operation does.
func (s *Syncer) loading() func() {
	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.state.Loading = false
		s.mu.Unlock()
	}
}

// settle records the outcome of a remote operation: the sync time on
// success, the visible error (with scheduled clearing) on failure.
// Previously fetched state is never discarded on failure.
func (s *Syncer) settle(res mdapi.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Success {
		t := time.Now()
		s.state.LastSyncTime = &t
		return
	}

	s.log.WithField("error", res.Err).Error(res.Message)
	s.state.LastError = res.Message

	if s.errTimer != nil {
		s.errTimer.Stop()
	}
	s.errTimer = time.AfterFunc(s.errTTL, func() {
		s.mu.Lock()
		s.state.LastError = ""
		s.mu.Unlock()
	})
}
