// Package editor composes the markdown pipeline: rendering, local
// persistence, autosave and remote synchronization.
package editor

import (
	"sync"
	"time"

	"github.com/markpad/markpad/internal/markdown"
	"github.com/markpad/markpad/internal/schedule"
	"github.com/markpad/markpad/internal/store"
	"github.com/sirupsen/logrus"
)

// A Config carries the editor session tunables.
type Config struct {
	RenderDelay     time.Duration
	AutosaveDelay   time.Duration
	AutosaveEnabled bool
}

// DefaultConfig returns the session defaults.
func DefaultConfig() Config {
	return Config{
		RenderDelay:     schedule.DefaultRenderDelay,
		AutosaveDelay:   schedule.DefaultAutosaveDelay,
		AutosaveEnabled: true,
	}
}

// A Session is a single editing session: the in-memory document, its
// debounced preview and its throttled local persistence.
type Session struct {
	mu       sync.Mutex
	content  string
	initial  string
	preview  string
	renderer *markdown.Renderer
	schedule *schedule.RenderScheduler
	autosave *schedule.Autosave
	db       store.Client
	log      logrus.FieldLogger
}

// NewSession returns a Session initialized from the local store, or
// from the built-in guide when nothing was persisted yet.
func NewSession(db store.Client, cfg Config, log logrus.FieldLogger) *Session {
	renderer := markdown.NewRenderer()
	content := db.Get(store.EditorContentKey, markdown.DefaultGuide)

	s := &Session{
		content:  content,
		initial:  content,
		preview:  renderer.Render(content),
		renderer: renderer,
		db:       db,
		log:      log,
	}

	s.schedule = schedule.NewRenderScheduler(cfg.RenderDelay, renderer.Render, s.setPreview)
	s.autosave = schedule.NewAutosave(content, cfg.AutosaveDelay, cfg.AutosaveEnabled, s.persist)

	return s
}

// SetContent records a content change, schedules a re-render and arms
// the autosave.
func (s *Session) SetContent(content string) {
	s.mu.Lock()
	s.content = content
	s.mu.Unlock()

	s.schedule.Submit(content)
	s.autosave.Observe(content)
}

// Content returns the current markdown source.
func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Preview returns the last rendered sanitized HTML.
func (s *Session) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Render renders the current content synchronously, bypassing the
// debounce. Used when an up-to-date preview is required immediately.
func (s *Session) Render() string {
	html := s.renderer.Render(s.Content())
	s.setPreview(html)
	return html
}

// ForceSave persists the current content to the local store immediately.
func (s *Session) ForceSave() {
	s.autosave.ForceSave()
}

// Reset discards the current document and restores the content the
// session started with, in memory and in the local store.
func (s *Session) Reset() {
	s.mu.Lock()
	content := s.initial
	s.content = content
	s.preview = s.renderer.Render(content)
	s.mu.Unlock()

	s.autosave.Observe(content)
	s.persist(content)
}

// SetAutosaveEnabled toggles the local autosave.
func (s *Session) SetAutosaveEnabled(enabled bool) {
	s.autosave.SetEnabled(enabled)
}

// Close tears down the session's timers. The store stays open, it is
// owned by the caller.
func (s *Session) Close() {
	s.schedule.Close()
	s.autosave.Close()
}

func (s *Session) setPreview(html string) {
	s.mu.Lock()
	s.preview = html
	s.mu.Unlock()
}

func (s *Session) persist(content string) {
	s.db.Set(store.EditorContentKey, content)
}
