package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"afisha/internal/errors"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value of a query from the remote accessor.
type FetchFunc func(ctx context.Context) (any, error)

// entry is the cached state of one key. All fields are guarded by Store.mu.
type entry struct {
	value     any
	hasValue  bool
	fetchedAt time.Time
	fetchErr  error // last failed revalidation; the stale value is retained

	// lastSeq is the sequence number of the most recently initiated fetch
	// for this key. A completion with an older sequence is discarded.
	lastSeq    uint64
	refreshing bool
	refreshSeq uint64
}

// Store is the shared query cache. All mutation goes through Get/Refresh/
// Put/Invalidate; no caller reads entries directly.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry
	subs    map[Key]map[uint64]chan struct{}
	nextSub uint64
	nextSeq uint64

	group  singleflight.Group
	now    func() time.Time
	logger *slog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces the wall clock, used by tests to control freshness.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty query cache.
func NewStore(logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		entries: make(map[Key]*entry),
		subs:    make(map[Key]map[uint64]chan struct{}),
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Get returns the value for key, fetching it when needed.
//
//   - Fresh hit (age < ttl): the cached value, no network call.
//   - Stale hit: the cached value immediately, plus one background
//     revalidation; subscribers are notified when it lands.
//   - Miss: a synchronous fetch, with concurrent callers for the same key
//     collapsed into a single flight.
func (s *Store) Get(ctx context.Context, key Key, ttl time.Duration, fetch FetchFunc) (any, error) {
	s.mu.Lock()
	e := s.entryLocked(key)

	if e.hasValue {
		if s.now().Sub(e.fetchedAt) < ttl {
			value := e.value
			s.mu.Unlock()

			return value, nil
		}

		// Stale-while-revalidate: hand back the old value and refresh
		// behind the caller's back. The refetch must outlive the caller,
		// whose view may unmount before it resolves.
		if !e.refreshing {
			seq := s.beginFetchLocked(e)
			e.refreshing = true
			e.refreshSeq = seq

			bgCtx := context.WithoutCancel(ctx)
			go func() {
				value, err := fetch(bgCtx)
				s.applyFetch(key, seq, value, err)
			}()
		}

		value := e.value
		s.mu.Unlock()

		return value, nil
	}

	seq := s.beginFetchLocked(e)
	s.mu.Unlock()

	value, err, _ := s.group.Do(key.String(), func() (any, error) {
		return fetch(ctx)
	})
	s.applyFetch(key, seq, value, err)
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Refresh forces a fetch for key regardless of freshness and applies the
// result under the same sequencing rules as Get.
func (s *Store) Refresh(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	s.mu.Lock()
	e := s.entryLocked(key)
	seq := s.beginFetchLocked(e)
	s.mu.Unlock()

	value, err := fetch(ctx)
	s.applyFetch(key, seq, value, err)

	return value, err
}

// Peek reports the cached value without triggering any fetch.
func (s *Store) Peek(key Key, ttl time.Duration) (value any, ok bool, fresh bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[key]
	if !exists || !e.hasValue {
		return nil, false, false
	}

	return e.value, true, s.now().Sub(e.fetchedAt) < ttl
}

// LastError reports the most recent failed revalidation for key, if the
// stale value is still being served.
func (s *Store) LastError(key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		return e.fetchErr
	}

	return nil
}

// Put stores a value directly, marking it fresh. Mutations use it to patch
// query results they already know the new shape of. A Put supersedes any
// in-flight fetch for the key so a late read cannot overwrite it.
func (s *Store) Put(key Key, value any) {
	s.mu.Lock()
	e := s.entryLocked(key)
	s.beginFetchLocked(e)
	e.value = value
	e.hasValue = true
	e.fetchedAt = s.now()
	e.fetchErr = nil
	waiters := s.subscribersLocked(key)
	s.mu.Unlock()

	notify(waiters)
}

// Invalidate drops the entry for key; the next read refetches.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	delete(s.entries, key)
	waiters := s.subscribersLocked(key)
	s.mu.Unlock()

	notify(waiters)
}

// InvalidateResource drops every entry of one resource kind.
func (s *Store) InvalidateResource(resource string) {
	s.mu.Lock()
	var waiters []chan struct{}
	for key := range s.entries {
		if key.Resource == resource {
			delete(s.entries, key)
			waiters = append(waiters, s.subscribersLocked(key)...)
		}
	}
	s.mu.Unlock()

	notify(waiters)
}

// InvalidateAll drops every entry. Logout uses it so viewer-scoped fields
// can never leak across user sessions.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	s.entries = make(map[Key]*entry)
	var waiters []chan struct{}
	for key := range s.subs {
		waiters = append(waiters, s.subscribersLocked(key)...)
	}
	s.mu.Unlock()

	notify(waiters)
}

// Subscribe registers interest in key. The returned channel receives a
// signal (coalesced) whenever the entry changes; the cancel func must be
// called when the dependent view unmounts.
func (s *Store) Subscribe(key Key) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	if s.subs[key] == nil {
		s.subs[key] = make(map[uint64]chan struct{})
	}
	s.subs[key][id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if waiters, ok := s.subs[key]; ok {
			delete(waiters, id)
			if len(waiters) == 0 {
				delete(s.subs, key)
			}
		}
		s.mu.Unlock()
	}

	return ch, cancel
}

// entryLocked returns the entry for key, creating it when absent.
func (s *Store) entryLocked(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}

	return e
}

// beginFetchLocked allocates the next fetch sequence number and records it
// as the latest initiated fetch for the entry. The counter is store-wide so
// a fetch started before an invalidation can never collide with one started
// after.
func (s *Store) beginFetchLocked(e *entry) uint64 {
	s.nextSeq++
	e.lastSeq = s.nextSeq

	return s.nextSeq
}

// applyFetch records a fetch completion. Results of superseded fetches are
// discarded: if a newer fetch was initiated for the key after this one
// started, or the entry was invalidated meanwhile, the completion is
// dropped on the floor.
func (s *Store) applyFetch(key Key, seq uint64, value any, err error) {
	s.mu.Lock()

	e, ok := s.entries[key]
	if ok && e.refreshing && seq == e.refreshSeq {
		e.refreshing = false
	}
	if !ok || seq != e.lastSeq {
		s.mu.Unlock()
		s.logger.Debug("Discarding superseded fetch result", slog.String("key", key.String()), slog.Uint64("seq", seq))

		return
	}

	if err != nil {
		// Keep serving the stale value; record the failure for readers
		// of LastError.
		e.fetchErr = err
		s.mu.Unlock()
		s.logger.Warn("Query revalidation failed", slog.String("key", key.String()), slog.Any("error", err))

		return
	}

	e.value = value
	e.hasValue = true
	e.fetchedAt = s.now()
	e.fetchErr = nil
	waiters := s.subscribersLocked(key)
	s.mu.Unlock()

	notify(waiters)
}

func (s *Store) subscribersLocked(key Key) []chan struct{} {
	waiters := make([]chan struct{}, 0, len(s.subs[key]))
	for _, ch := range s.subs[key] {
		waiters = append(waiters, ch)
	}

	return waiters
}

// notify signals subscribers without blocking; a pending signal coalesces.
func notify(waiters []chan struct{}) {
	for _, ch := range waiters {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// QueryRefresh is the typed counterpart of Store.Refresh for forced
// (user-initiated) refetches that bypass the freshness window.
func QueryRefresh[T any](ctx context.Context, s *Store, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	value, err := s.Refresh(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, errors.Errorf("cache entry %s holds %T, not the requested type", key, value)
	}

	return typed, nil
}

// Query is a typed wrapper over Store.Get for callers that know the value
// shape of their key.
func Query[T any](ctx context.Context, s *Store, key Key, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	value, err := s.Get(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, errors.Errorf("cache entry %s holds %T, not the requested type", key, value)
	}

	return typed, nil
}
