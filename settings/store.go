package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Listener is called after every change with the new settings and their
// freshly derived values.
type Listener func(Settings, Derived)

// Store owns the current settings and notifies subscribers on change.
// Consumers should call Derived on each use rather than keeping a copy.
type Store struct {
	mu        sync.RWMutex
	cur       Settings
	path      string
	listeners map[int]Listener
	nextID    int
	log       logrus.FieldLogger
}

// NewStore returns an in-memory store seeded with initial.
func NewStore(initial Settings, log logrus.FieldLogger) *Store {
	if log == nil {
		log = discardLogger()
	}
	return &Store{
		cur:       Sanitize(initial),
		listeners: make(map[int]Listener),
		log:       log,
	}
}

// NewFileStore returns a store persisted as YAML at path. A missing file
// yields the defaults; a corrupt one is logged and replaced by defaults.
func NewFileStore(path string, log logrus.FieldLogger) (*Store, error) {
	if path == "" {
		return nil, errors.New("settings path is required")
	}
	s := NewStore(Default(), log)
	s.path = path

	cur, err := LoadFile(path)
	switch {
	case err == nil:
		s.cur = cur
	case errors.Is(err, os.ErrNotExist):
	default:
		s.log.WithError(err).WithField("path", path).Warn("settings: unreadable, using defaults")
	}
	return s, nil
}

// Path is the backing file, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Derived recomputes the pip economics from the current settings.
func (s *Store) Derived() Derived {
	return Derive(s.Get())
}

// Update applies fn to a copy of the settings, sanitizes, persists and
// notifies listeners. fn runs with the store locked and must not call back
// into the store.
func (s *Store) Update(fn func(*Settings)) (Settings, error) {
	return s.apply(func(cur Settings) (Settings, bool, error) {
		fn(&cur)
		return Sanitize(cur), true, nil
	}, true)
}

// Reset restores the defaults.
func (s *Store) Reset() error {
	_, err := s.apply(func(Settings) (Settings, bool, error) {
		return Default(), true, nil
	}, true)
	return err
}

// ApplyPreset applies a named preset, optionally replacing the USD/JPY rate.
func (s *Store) ApplyPreset(name string, usdJPYRate float64) (Settings, error) {
	return s.apply(func(cur Settings) (Settings, bool, error) {
		next, err := ApplyPreset(cur, name, usdJPYRate)
		if err != nil {
			return cur, false, err
		}
		return Sanitize(next), true, nil
	}, true)
}

// Reload re-reads the backing file and notifies listeners when the content
// changed.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	next, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	_, err = s.apply(func(cur Settings) (Settings, bool, error) {
		return next, next != cur, nil
	}, false)
	return err
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// apply runs change against the current settings with the lock held, so
// concurrent updates and reloads never lose a write. Listeners are called
// after the lock is released.
func (s *Store) apply(change func(cur Settings) (Settings, bool, error), persist bool) (Settings, error) {
	s.mu.Lock()
	next, changed, err := change(s.cur)
	if err != nil || !changed {
		cur := s.cur
		s.mu.Unlock()
		return cur, err
	}
	if persist && s.path != "" {
		if err := SaveFile(s.path, next); err != nil {
			cur := s.cur
			s.mu.Unlock()
			return cur, err
		}
	}
	s.cur = next
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	derived := Derive(next)
	for _, fn := range fns {
		s.notify(fn, next, derived)
	}
	return next, nil
}

func (s *Store) notify(fn Listener, cur Settings, d Derived) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", r).Error("settings: listener failed")
		}
	}()
	fn(cur, d)
}

// LoadFile reads settings from a YAML file, filling omitted fields with
// defaults.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return Sanitize(s), nil
}

// SaveFile writes settings as YAML, creating parent directories.
func SaveFile(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
