package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/gridiron/internal/diagram"
)

// Store keeps editor sessions in memory. A session expires once it has not
// been touched for the TTL. The store never holds more sessions than the
// cache can fit, so a live session is never evicted to make room; Create
// is refused instead.
type Store struct {
	cache *ristretto.Cache[string, *Session]
	ttl   time.Duration
	max   int

	mu   sync.Mutex
	live map[string]struct{}
}

// NewStore creates a store holding at most maxSessions sessions.
func NewStore(maxSessions int64, ttl time.Duration) (*Store, error) {
	if maxSessions <= 0 || ttl <= 0 {
		return nil, fmt.Errorf("session store needs positive capacity and ttl")
	}
	s := &Store{ttl: ttl, max: int(maxSessions), live: make(map[string]struct{})}
	c, err := ristretto.NewCache(&ristretto.Config[string, *Session]{
		NumCounters:        maxSessions * 10,
		MaxCost:            maxSessions,
		BufferItems:        64,
		IgnoreInternalCost: true,
		// Expired entries are removed through OnEvict as well.
		OnEvict: func(item *ristretto.Item[*Session]) {
			s.forget(item.Value)
		},
		OnReject: func(item *ristretto.Item[*Session]) {
			s.forget(item.Value)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	s.cache = c
	return s, nil
}

func (s *Store) forget(sess *Session) {
	if sess == nil {
		return
	}
	s.mu.Lock()
	delete(s.live, sess.ID)
	s.mu.Unlock()
}

// reserve claims a slot for id. The lock is never held across cache calls
// because the cache runs its callbacks while Wait blocks.
func (s *Store) reserve(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.live) >= s.max {
		return ErrStoreFull
	}
	s.live[id] = struct{}{}
	return nil
}

// Create stores a new session around editor. playID is set when an
// existing play is being re-edited.
func (s *Store) Create(ownerID string, teamID, playID *uint, editor *diagram.Editor) (*Session, error) {
	sess := newSession(uuid.NewString(), ownerID, teamID, editor)
	sess.PlayID = playID
	if err := s.reserve(sess.ID); err != nil {
		return nil, err
	}
	if err := s.put(sess); err != nil {
		s.forget(sess)
		return nil, err
	}
	return sess, nil
}

func (s *Store) put(sess *Session) error {
	if !s.cache.SetWithTTL(sess.ID, sess, 1, s.ttl) {
		return ErrSessionRejected
	}
	s.cache.Wait()
	return nil
}

// Get returns the session and extends its lifetime. Sessions owned by
// somebody else are reported as missing.
func (s *Store) Get(id, ownerID string) (*Session, error) {
	sess, ok := s.cache.Get(id)
	if !ok || sess.OwnerID != ownerID {
		return nil, ErrSessionNotFound
	}
	// A refused refresh keeps the old expiry, the session is still usable.
	s.cache.SetWithTTL(sess.ID, sess, 1, s.ttl)
	return sess, nil
}

// Delete drops a session owned by ownerID.
func (s *Store) Delete(id, ownerID string) error {
	sess, ok := s.cache.Get(id)
	if !ok || sess.OwnerID != ownerID {
		return ErrSessionNotFound
	}
	s.cache.Del(id)
	s.cache.Wait()
	s.forget(sess)
	return nil
}

func (s *Store) Close() {
	s.cache.Close()
}
