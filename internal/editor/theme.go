package editor

import (
	"sync"

	"github.com/markpad/markpad/internal/store"
)

// A Theme names a rendering color scheme.
type Theme string

// The supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// A ThemeConfig holds the persisted theme as explicit configuration
// with an update subscription, instead of ambient global state.
type ThemeConfig struct {
	mu      sync.Mutex
	db      store.Client
	current Theme
	subs    []func(Theme)
}

// NewThemeConfig loads the persisted theme, defaulting to light.
func NewThemeConfig(db store.Client) *ThemeConfig {
	current := Theme(db.Get(store.ThemeKey, string(ThemeLight)))
	if current != ThemeDark {
		current = ThemeLight
	}

	return &ThemeConfig{db: db, current: current}
}

// Current returns the active theme.
func (t *ThemeConfig) Current() Theme {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Set persists the theme and notifies subscribers.
func (t *ThemeConfig) Set(theme Theme) {
	if theme != ThemeDark {
		theme = ThemeLight
	}

	t.mu.Lock()
	t.current = theme
	subs := make([]func(Theme), len(t.subs))
	copy(subs, t.subs)
	t.mu.Unlock()

	t.db.Set(store.ThemeKey, string(theme))
	for _, sub := range subs {
		sub(theme)
	}
}

// Subscribe registers fn to be called on every theme change.
func (t *ThemeConfig) Subscribe(fn func(Theme)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs = append(t.subs, fn)
}
