package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/meusprojetos/minhasferramentas/pkg/prefs"
)

const (
	// MaxEntries bounds the history; adding past it evicts the oldest entry.
	MaxEntries = 15

	// Header is the first line of every rendered history.
	Header = "Histórico:"

	PrefsNamespace = "HistoricoRegraTresPrefs"
	PrefsKey       = "historico_calculos"
)

// ErrPersistenceUnavailable wraps any failure of the durable store.
var ErrPersistenceUnavailable = errors.New("history persistence unavailable")

// Ordering decides how entries are written to and recovered from the prefs store.
type Ordering string

const (
	// OrderingSequence persists an ordered list. Order and duplicates survive a restart.
	OrderingSequence Ordering = "sequence"
	// OrderingLegacySet persists an unordered string set and re-sorts it
	// lexicographically descending on load. Duplicates collapse and
	// chronological order is lost once two or more entries exist.
	OrderingLegacySet Ordering = "legacy-set"
)

func ParseOrdering(s string) (Ordering, error) {
	switch Ordering(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderingSequence:
		return OrderingSequence, nil
	case OrderingLegacySet, "legacy", "set":
		return OrderingLegacySet, nil
	}
	return "", fmt.Errorf("unknown history ordering %q", s)
}

// Store is the newest-first, size-bounded calculation history of one session.
// It is not safe for concurrent use.
type Store struct {
	prefs     prefs.Store
	ordering  Ordering
	namespace string
	key       string
	entries   []string
}

type Option func(*Store)

func WithOrdering(o Ordering) Option {
	return func(s *Store) { s.ordering = o }
}

// WithKeys overrides the prefs namespace and entry key.
func WithKeys(namespace, key string) Option {
	return func(s *Store) {
		s.namespace = namespace
		s.key = key
	}
}

func New(p prefs.Store, opts ...Option) *Store {
	s := &Store{
		prefs:     p,
		ordering:  OrderingSequence,
		namespace: PrefsNamespace,
		key:       PrefsKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Ordering() Ordering { return s.ordering }

// Add puts entry at the head and evicts the tail when the bound is exceeded.
// The in-memory list changes even when persisting fails.
func (s *Store) Add(ctx context.Context, entry string) error {
	s.entries = append([]string{entry}, s.entries...)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:len(s.entries)-1]
	}
	return s.Flush(ctx)
}

// Clear empties the history and overwrites the stored value with the empty state.
func (s *Store) Clear(ctx context.Context) error {
	s.entries = nil
	return s.Flush(ctx)
}

// Render returns the header followed by one entry per line.
func (s *Store) Render() string {
	if len(s.entries) == 0 {
		return Header
	}
	return Header + "\n" + strings.Join(s.entries, "\n")
}

func (s *Store) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int { return len(s.entries) }

// Load replaces the in-memory entries with the persisted ones. A missing
// value leaves the history empty.
func (s *Store) Load(ctx context.Context) error {
	var (
		stored []string
		err    error
	)
	switch s.ordering {
	case OrderingLegacySet:
		stored, err = s.prefs.GetStringSet(ctx, s.namespace, s.key)
		if err == nil {
			sort.Sort(sort.Reverse(sort.StringSlice(stored)))
		}
	default:
		stored, err = s.prefs.GetStringList(ctx, s.namespace, s.key)
	}
	if err != nil {
		return fmt.Errorf("%w: load %s/%s: %v", ErrPersistenceUnavailable, s.namespace, s.key, err)
	}
	if len(stored) > MaxEntries {
		stored = stored[:MaxEntries]
	}
	s.entries = stored
	return nil
}

// Flush writes the full current list, replacing whatever was stored.
func (s *Store) Flush(ctx context.Context) error {
	var err error
	switch s.ordering {
	case OrderingLegacySet:
		err = s.prefs.PutStringSet(ctx, s.namespace, s.key, s.entries)
	default:
		err = s.prefs.PutStringList(ctx, s.namespace, s.key, s.entries)
	}
	if err != nil {
		return fmt.Errorf("%w: save %s/%s: %v", ErrPersistenceUnavailable, s.namespace, s.key, err)
	}
	return nil
}
