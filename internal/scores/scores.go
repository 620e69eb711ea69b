// Package scores keeps the leaderboard: every finished run becomes an Entry
// in a per-mode collection that is kept sorted best-first and persisted as
// JSON through a key-value backend.
package scores

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tile-arcade/internal/core"
)

// KeyPrefix namespaces score collections in the key-value backend.
const KeyPrefix = "scores/"

// DefaultLimit is the leaderboard length shown when none is requested.
const DefaultLimit = 10

// Entry is one completed run. Entries are created once and never changed.
type Entry struct {
	ID        uuid.UUID   `json:"id"`
	Mode      string      `json:"mode"`
	Kind      core.Metric `json:"kind"`
	Value     int64       `json:"metric"` // points, or milliseconds for time modes
	Player    string      `json:"player"`
	Timestamp time.Time   `json:"timestamp"`
}

// Duration returns the value as a duration for time-based entries.
func (e Entry) Duration() time.Duration {
	return time.Duration(e.Value) * time.Millisecond
}

// KV is the persistence backend.
// Get returns a nil value without error for a missing key.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// KeyLister is implemented by backends that can enumerate keys.
type KeyLister interface {
	Keys(prefix string) ([]string, error)
}

// Deleter is implemented by backends that can drop a key.
type Deleter interface {
	Delete(key string) error
}

// UpdateTimer is implemented by backends that remember when a key was last
// written.
type UpdateTimer interface {
	UpdatedAt(key string) (time.Time, error)
}

// Store is the leaderboard. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	kv     KV
	logger *log.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// Option configures a Store.
type Option func(*Store)

// WithLogger replaces the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces time.Now for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store over kv.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv: kv,
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "scores",
		}),
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewEntry builds an entry for a finished run. ID and Timestamp are filled
// in by Record.
func NewEntry(res core.RunResult, player string) Entry {
	return Entry{
		Mode:   res.Mode,
		Kind:   res.Metric,
		Value:  res.Value,
		Player: player,
	}
}

// Record appends e to its mode's collection, re-sorts it and persists the
// whole collection. Persistence failures are logged and otherwise ignored.
// When the existing collection cannot be read the entry is not saved, so a
// transient backend error never replaces stored runs. The entry is
// returned either way.
func (s *Store) Record(e Entry) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == uuid.Nil {
		e.ID = s.newID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}
	if e.Kind == "" {
		e.Kind = core.MetricScore
	}

	entries, err := s.load(e.Mode)
	if err != nil {
		s.logger.Error("not saving run, scores unreadable", "mode", e.Mode, "value", e.Value, "error", err)
		return e
	}
	entries = append(entries, e)
	Sort(entries)
	s.save(e.Mode, entries)
	return e
}

// TopN returns the first n entries for mode, best first. Fewer are returned
// when the collection is short. A non-positive n means DefaultLimit.
func (s *Store) TopN(mode string, n int) []Entry {
	if n <= 0 {
		n = DefaultLimit
	}
	entries := s.All(mode)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// BestFor returns the best entry for mode.
func (s *Store) BestFor(mode string) (Entry, bool) {
	top := s.TopN(mode, 1)
	if len(top) == 0 {
		return Entry{}, false
	}
	return top[0], true
}

// All returns every entry for mode, best first.
func (s *Store) All(mode string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(mode)
	if err != nil {
		s.logger.Warn("could not read scores", "mode", mode, "error", err)
		return nil
	}
	Sort(entries)
	return entries
}

// Clear drops every entry for mode.
func (s *Store) Clear(mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.kv.(Deleter); ok {
		return d.Delete(KeyPrefix + mode)
	}
	return s.kv.Put(KeyPrefix+mode, []byte("[]"))
}

// LastPlayed reports when a run was last recorded for mode. Backends that
// track write times answer directly; otherwise the newest entry decides.
func (s *Store) LastPlayed(mode string) (time.Time, bool) {
	if ut, ok := s.kv.(UpdateTimer); ok {
		at, err := ut.UpdatedAt(KeyPrefix + mode)
		if err == nil {
			return at, !at.IsZero()
		}
		s.logger.Warn("could not read score timestamp", "mode", mode, "error", err)
	}

	var last time.Time
	for _, e := range s.All(mode) {
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}
	return last, !last.IsZero()
}

// Modes lists the modes that have stored collections. It returns nil when
// the backend cannot enumerate keys.
func (s *Store) Modes() []string {
	lister, ok := s.kv.(KeyLister)
	if !ok {
		return nil
	}
	keys, err := lister.Keys(KeyPrefix)
	if err != nil {
		s.logger.Warn("could not list score collections", "error", err)
		return nil
	}

	modes := make([]string, 0, len(keys))
	for _, k := range keys {
		modes = append(modes, strings.TrimPrefix(k, KeyPrefix))
	}
	sort.Strings(modes)
	return modes
}

// load reads a collection. Missing data is an empty collection, and so is
// data that no longer decodes; the next Record overwrites it. Backend
// errors are returned.
func (s *Store) load(mode string) ([]Entry, error) {
	data, err := s.kv.Get(KeyPrefix + mode)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("discarding corrupt scores", "mode", mode, "error", err)
		return nil, nil
	}
	return entries, nil
}

func (s *Store) save(mode string, entries []Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		s.logger.Warn("could not encode scores", "mode", mode, "error", err)
		return
	}
	if err := s.kv.Put(KeyPrefix+mode, data); err != nil {
		s.logger.Warn("could not save scores", "mode", mode, "error", err)
	}
}

// Sort orders entries best first: fastest time for time entries, highest
// score otherwise. Ties go to the earlier run.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Value != b.Value {
			if a.Kind == core.MetricTime {
				return a.Value < b.Value
			}
			return a.Value > b.Value
		}
		return a.Timestamp.Before(b.Timestamp)
	})
}
