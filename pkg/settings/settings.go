// Package settings persists application state as a JSON tree with
// path-based access. Writes notify binding listeners through a dedicated
// trigger address, and a task-queue drain flushes pending saves at exit.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/brisk-gui/brisk/pkg/binding"
	"github.com/brisk-gui/brisk/pkg/dispatch"
	"github.com/brisk-gui/brisk/pkg/errors"
)

// fileName is the settings file inside the per-application config
// directory.
const fileName = "settings.json"

// Store is a thread-safe JSON settings tree. Paths address nested values
// with dot separators ("window.placement.x"). Intermediate objects are
// created on write.
type Store struct {
	mu      sync.RWMutex
	data    map[string]any
	path    string
	dirty   bool
	pending bool

	registry *binding.Registry
	trigger  binding.Address
	queue    *dispatch.Queue
}

// Option configures a Store at construction.
type Option func(*Store)

// WithPath overrides the storage file location. Tests use it.
func WithPath(path string) Option {
	return func(s *Store) { s.path = path }
}

// WithRegistry attaches the binding registry change notifications go
// through. Without it, writes do not notify.
func WithRegistry(r *binding.Registry) Option {
	return func(s *Store) { s.registry = r }
}

// WithFlushQueue sets the task queue save work is deferred onto. Without
// it, saves run inline on the writing goroutine.
func WithFlushQueue(q *dispatch.Queue) Option {
	return func(s *Store) { s.queue = q }
}

// Open loads or creates the settings store for the named application.
// The default location is the per-OS user config directory.
func Open(appName string, opts ...Option) (*Store, error) {
	s := &Store{data: map[string]any{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("settings: locate config dir: %w", err)
		}
		s.path = filepath.Join(dir, appName, fileName)
	}
	if s.registry != nil {
		s.trigger = binding.AllocateAddress(1)
		s.registry.RegisterRegion(s.trigger, s.queue)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Trigger returns the binding address notified after every write. Callers
// listen on it to observe settings changes.
func (s *Store) Trigger() binding.Address {
	return s.trigger
}

// Path returns the storage file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("settings: read %s: %w", s.path, err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("settings: parse %s: %w", s.path, err)
	}
	s.data = data
	return nil
}

// Get returns the value at a dot-separated path.
func (s *Store) Get(path string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node := any(s.data)
	for _, key := range strings.Split(path, ".") {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		if node, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return node, true
}

// GetString returns a string value, or fallback when absent or mistyped.
func (s *Store) GetString(path, fallback string) string {
	if v, ok := s.Get(path); ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return fallback
}

// GetFloat returns a numeric value, or fallback when absent or mistyped.
func (s *Store) GetFloat(path string, fallback float64) float64 {
	if v, ok := s.Get(path); ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return fallback
}

// GetBool returns a boolean value, or fallback when absent or mistyped.
func (s *Store) GetBool(path string, fallback bool) bool {
	if v, ok := s.Get(path); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// Set writes a value at a dot-separated path, creating intermediate
// objects. Mistyped intermediates are replaced. Listeners on the trigger
// address are notified after the write.
func (s *Store) Set(path string, value any) {
	s.mu.Lock()
	node := s.data
	keys := strings.Split(path, ".")
	for _, key := range keys[:len(keys)-1] {
		child, ok := node[key].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[key] = child
		}
		node = child
	}
	node[keys[len(keys)-1]] = value
	s.dirty = true
	s.mu.Unlock()

	s.notify()
	s.scheduleSave()
}

// Delete removes the value at a path. It reports whether one was present.
func (s *Store) Delete(path string) bool {
	s.mu.Lock()
	node := s.data
	keys := strings.Split(path, ".")
	for _, key := range keys[:len(keys)-1] {
		child, ok := node[key].(map[string]any)
		if !ok {
			s.mu.Unlock()
			return false
		}
		node = child
	}
	last := keys[len(keys)-1]
	_, present := node[last]
	if present {
		delete(node, last)
		s.dirty = true
	}
	s.mu.Unlock()
	if present {
		s.notify()
		s.scheduleSave()
	}
	return present
}

// Snapshot returns a deep copy of the settings tree.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTree(s.data)
}

func cloneTree(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if obj, ok := v.(map[string]any); ok {
			out[k] = cloneTree(obj)
			continue
		}
		out[k] = v
	}
	return out
}

func (s *Store) notify() {
	if s.registry != nil {
		s.registry.Notify(s.trigger)
	}
}

// scheduleSave coalesces saves onto the flush queue, one task per burst
// of writes.
func (s *Store) scheduleSave() {
	if s.queue == nil {
		if err := s.Save(); err != nil {
			errors.Report(errors.New("settings.Save", errors.KindResource, err))
		}
		return
	}
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return
	}
	s.pending = true
	s.mu.Unlock()
	s.queue.Enqueue(func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
		if err := s.Save(); err != nil {
			errors.Report(errors.New("settings.Save", errors.KindResource, err))
		}
	})
}

// Save writes the tree to disk as UTF-8 JSON with 4-space indentation.
// Clean trees are skipped.
func (s *Store) Save() error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	raw, err := json.MarshalIndent(s.data, "", "    ")
	s.dirty = false
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("settings: create config dir: %w", err)
	}
	if err := os.WriteFile(s.path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", s.path, err)
	}
	return nil
}

// Close drains pending flush tasks, forces a final save, and releases the
// trigger region. Call at process exit before tearing down task queues.
func (s *Store) Close() error {
	if s.queue != nil && s.queue.IsCurrent() {
		s.queue.Process()
	}
	err := s.Save()
	if s.registry != nil && !s.trigger.IsZero() {
		s.registry.UnregisterRegion(s.trigger)
		s.trigger = binding.Address{}
	}
	return err
}
