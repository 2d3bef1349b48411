package editor_test

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/markpad/markpad/internal/editor"
	"github.com/markpad/markpad/pkg/mdapi"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stub is a scripted mdapi.Client.
type stub struct {
	mu      sync.Mutex
	save    mdapi.Result
	load    mdapi.Result
	list    mdapi.Result
	update  mdapi.Result
	delete  mdapi.Result
	calls   []string
	barrier chan struct{} // when set, operations block until it closes
}

func (s *stub) record(op string, res mdapi.Result) mdapi.Result {
	s.mu.Lock()
	s.calls = append(s.calls, op)
	s.mu.Unlock()

	if s.barrier != nil {
		<-s.barrier
	}
	return res
}

func (s *stub) result(res *mdapi.Result) mdapi.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *res
}

func (s *stub) Save(title, content, tags string) mdapi.Result {
	return s.record("save", s.result(&s.save))
}
func (s *stub) Load(id string) mdapi.Result { return s.record("load", s.result(&s.load)) }
func (s *stub) List(limit int) mdapi.Result { return s.record("list", s.result(&s.list)) }
func (s *stub) Update(id, title, content, tags string) mdapi.Result {
	return s.record("update", s.result(&s.update))
}
func (s *stub) Delete(id string) mdapi.Result { return s.record("delete", s.result(&s.delete)) }

func (s *stub) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func ok(message string, data any) mdapi.Result {
	return mdapi.Result{Success: true, Message: message, Data: data}
}

func ko(message string) mdapi.Result {
	return mdapi.Result{Success: false, Message: message, Err: "all endpoints unavailable: boom"}
}

func TestSyncerSaveSuccess(t *testing.T) {
	client := &stub{save: ok("Document saved successfully", &mdapi.Document{ID: "1"})}
	s := editor.NewSyncer(client, quietLogger())

	res := s.Save("T", "# Hi", "tag")
	require.True(t, res.Success)

	state := s.State()
	assert.False(t, state.Loading)
	assert.Empty(t, state.LastError)
	assert.NotNil(t, state.LastSyncTime)
}

func TestSyncerSaveEmptyContent(t *testing.T) {
	client := &stub{}
	s := editor.NewSyncer(client, quietLogger())

	res := s.Save("T", "   \n", "tag")
	assert.False(t, res.Success)
	assert.Equal(t, "Cannot save an empty document", res.Message)
	// Never attempted remotely.
	assert.Empty(t, client.recorded())
	assert.Nil(t, s.State().LastSyncTime)
}

func TestSyncerFailureKeepsState(t *testing.T) {
	client := &stub{
		list: ok("Documents retrieved successfully", []mdapi.DocumentPreview{{ID: "1", Title: "A"}}),
	}
	s := editor.NewSyncer(client, quietLogger())

	require.True(t, s.List(5).Success)
	require.Len(t, s.State().Documents, 1)
	firstSync := s.State().LastSyncTime

	client.mu.Lock()
	client.list = ko("Failed to list documents")
	client.mu.Unlock()

	res := s.List(5)
	assert.False(t, res.Success)

	state := s.State()
	assert.False(t, state.Loading)
	assert.Equal(t, "Failed to list documents", state.LastError)
	// Prior successful state untouched.
	assert.Len(t, state.Documents, 1)
	assert.Equal(t, firstSync, state.LastSyncTime)
}

func TestSyncerErrorAutoClears(t *testing.T) {
	client := &stub{list: ko("Failed to list documents")}
	s := editor.NewSyncer(client, quietLogger())
	s.SetErrorDisplayDuration(50 * time.Millisecond)

	s.List(5)
	assert.Equal(t, "Failed to list documents", s.State().LastError)

	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, s.State().LastError)
}

func TestSyncerListReplacesWholesale(t *testing.T) {
	client := &stub{
		list: ok("Documents retrieved successfully", []mdapi.DocumentPreview{{ID: "1"}, {ID: "2"}}),
	}
	s := editor.NewSyncer(client, quietLogger())

	require.True(t, s.List(5).Success)
	require.Len(t, s.State().Documents, 2)

	client.mu.Lock()
	client.list = ok("Documents retrieved successfully", []mdapi.DocumentPreview{{ID: "3"}})
	client.mu.Unlock()

	require.True(t, s.List(5).Success)
	state := s.State()
	require.Len(t, state.Documents, 1)
	assert.Equal(t, "3", state.Documents[0].ID)
}

// The cached list is an own copy: mutating the slice a List call hands
// back must not reach through to the orchestrator state.
func TestSyncerListResultIsDetached(t *testing.T) {
	client := &stub{
		list: ok("Documents retrieved successfully", []mdapi.DocumentPreview{{ID: "1", Title: "A"}}),
	}
	s := editor.NewSyncer(client, quietLogger())

	res := s.List(5)
	require.True(t, res.Success)

	previews, ok := res.Data.([]mdapi.DocumentPreview)
	require.True(t, ok)
	previews[0].Title = "mutated"

	state := s.State()
	require.Len(t, state.Documents, 1)
	assert.Equal(t, "A", state.Documents[0].Title)
}

func TestSyncerDeleteRemovesEntry(t *testing.T) {
	client := &stub{
		list:   ok("Documents retrieved successfully", []mdapi.DocumentPreview{{ID: "1"}, {ID: "2"}}),
		delete: ok("Document deleted successfully", nil),
	}
	s := editor.NewSyncer(client, quietLogger())

	require.True(t, s.List(5).Success)
	require.True(t, s.Delete("1").Success)

	state := s.State()
	require.Len(t, state.Documents, 1)
	assert.Equal(t, "2", state.Documents[0].ID)
}

func TestSyncerLastSyncTimeOnEveryOperation(t *testing.T) {
	client := &stub{
		save:   ok("Document saved successfully", nil),
		load:   ok("Document loaded successfully", nil),
		update: ok("Document updated successfully", nil),
		delete: ok("Document deleted successfully", nil),
	}
	s := editor.NewSyncer(client, quietLogger())

	for _, op := range []func() mdapi.Result{
		func() mdapi.Result { return s.Save("T", "c", "") },
		func() mdapi.Result { return s.Load("1") },
		func() mdapi.Result { return s.Update("1", "T", "c", "") },
		func() mdapi.Result { return s.Delete("1") },
	} {
		before := s.State().LastSyncTime
		require.True(t, op().Success)
		after := s.State().LastSyncTime
		require.NotNil(t, after)
		if before != nil {
			assert.False(t, after.Before(*before))
		}
	}
}

// There is deliberately no single-flight guard: two concurrent
// operations both reach the client, and the loading flag is reset by
// whichever finishes first.
func TestSyncerConcurrentCallsNotSerialized(t *testing.T) {
	barrier := make(chan struct{})
	client := &stub{
		list:    ok("Documents retrieved successfully", []mdapi.DocumentPreview{}),
		barrier: barrier,
	}
	s := editor.NewSyncer(client, quietLogger())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); s.List(5) }()
	go func() { defer wg.Done(); s.List(5) }()

	// Both calls should be in flight at the same time.
	assert.Eventually(t, func() bool {
		return len(client.recorded()) == 2
	}, time.Second, 10*time.Millisecond)
	assert.True(t, s.State().Loading)

	close(barrier)
	wg.Wait()
	assert.False(t, s.State().Loading)
}
