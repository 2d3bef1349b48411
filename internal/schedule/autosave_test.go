package schedule_test

import (
	"testing"
	"time"

	"github.com/markpad/markpad/internal/schedule"
	"github.com/stretchr/testify/assert"
)

func TestAutosaveSuppressesInitialValue(t *testing.T) {
	out := &sink{}
	a := schedule.NewAutosave("initial", 50*time.Millisecond, true, out.push)
	defer a.Close()

	time.Sleep(200 * time.Millisecond)

	assert.Empty(t, out.all())
}

func TestAutosaveSavesChangedValue(t *testing.T) {
	out := &sink{}
	a := schedule.NewAutosave("initial", 50*time.Millisecond, true, out.push)
	defer a.Close()

	a.Observe("changed")
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, []string{"changed"}, out.all())
}

func TestAutosaveCancelAndReschedule(t *testing.T) {
	out := &sink{}
	a := schedule.NewAutosave("initial", 100*time.Millisecond, true, out.push)
	defer a.Close()

	a.Observe("v1")
	time.Sleep(30 * time.Millisecond)
	a.Observe("v2")
	time.Sleep(30 * time.Millisecond)
	a.Observe("v3")
	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, []string{"v3"}, out.all())
}

func TestAutosaveSkipsRevertedValue(t *testing.T) {
	out := &sink{}
	a := schedule.NewAutosave("initial", 100*time.Millisecond, true, out.push)
	defer a.Close()

	a.Observe("changed")
	a.Observe("initial")
	time.Sleep(300 * time.Millisecond)

	assert.Empty(t, out.all())
}

func TestAutosaveForceSave(t *testing.T) {
	out := &sink{}
	a := schedule.NewAutosave("initial", time.Hour, true, out.push)
	defer a.Close()

	// Unconditional, even without any change.
	a.ForceSave()
	assert.Equal(t, []string{"initial"}, out.all())

	a.Observe("changed")
	a.ForceSave()
	assert.Equal(t, []string{"initial", "changed"}, out.all())

	// The forced save became the last-saved value: no timer fires later.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"initial", "changed"}, out.all())
}

func TestAutosaveDisabled(t *testing.T) {
	out := &sink{}
	a := schedule.NewAutosave("initial", 50*time.Millisecond, false, out.push)
	defer a.Close()

	a.Observe("changed")
	a.ForceSave()
	time.Sleep(200 * time.Millisecond)

	assert.Empty(t, out.all())
}

func TestAutosaveDisableCancelsPending(t *testing.T) {
	out := &sink{}
	a := schedule.NewAutosave("initial", 50*time.Millisecond, true, out.push)
	defer a.Close()

	a.Observe("changed")
	a.SetEnabled(false)
	time.Sleep(200 * time.Millisecond)

	assert.Empty(t, out.all())
}

func TestAutosaveSetCallbackKeepsPendingTimer(t *testing.T) {
	first := &sink{}
	second := &sink{}
	a := schedule.NewAutosave("initial", 50*time.Millisecond, true, first.push)
	defer a.Close()

	a.Observe("changed")
	a.SetCallback(second.push)
	time.Sleep(200 * time.Millisecond)

	assert.Empty(t, first.all())
	assert.Equal(t, []string{"changed"}, second.all())
}

func TestAutosaveClose(t *testing.T) {
	out := &sink{}
	a := schedule.NewAutosave("initial", 50*time.Millisecond, true, out.push)

	a.Observe("changed")
	a.Close()
	time.Sleep(200 * time.Millisecond)

	assert.Empty(t, out.all())
	a.ForceSave() // no-op after Close
	assert.Empty(t, out.all())
}
