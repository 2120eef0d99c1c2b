package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultKeyLength is the length of generated game keys.
const DefaultKeyLength = 5

const maxKeyAttempts = 64

// RegistryEntry describes a live match.
type RegistryEntry struct {
	Key     string
	MatchID string
	OwnerID string
	Started bool
	Players int
}

// Registry maps game keys to matches and users to the key of the match
// they belong to. It is shared by every RPC and match loop.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]*RegistryEntry
	members  map[string]string
	// admitted holds when a joining user was let in by key, until the
	// match seats them or the admission lapses.
	admitted map[string]time.Time
	keyLen   int
	newKey   func() string
	now      func() time.Time
}

// NewRegistry returns a registry issuing keys of keyLen characters.
func NewRegistry(keyLen int) *Registry {
	if keyLen <= 0 {
		keyLen = DefaultKeyLength
	}
	r := &Registry{
		entries:  make(map[string]*RegistryEntry),
		members:  make(map[string]string),
		admitted: make(map[string]time.Time),
		keyLen:   keyLen,
		now:      time.Now,
	}
	r.newKey = r.uuidKey
	return r
}

// uuidKey returns the tail of a random UUID.
func (r *Registry) uuidKey() string {
	id := uuid.New().String()
	return id[len(id)-r.keyLen:]
}

// Reserve allocates a fresh key owned by ownerID and records the owner as
// a member.
func (r *Registry) Reserve(ownerID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[ownerID]; ok {
		return "", ErrAlreadyInGame
	}
	for i := 0; i < maxKeyAttempts; i++ {
		key := r.newKey()
		if _, taken := r.entries[key]; taken {
			continue
		}
		r.entries[key] = &RegistryEntry{Key: key, OwnerID: ownerID, Players: 1}
		r.members[ownerID] = key
		return key, nil
	}
	return "", ErrKeySpace
}

// Bind attaches the created match id to key.
func (r *Registry) Bind(key, matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[key]; ok {
		e.MatchID = matchID
	}
}

// Lookup returns a copy of the entry for key.
func (r *Registry) Lookup(key string) (RegistryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	if !ok || e.MatchID == "" {
		return RegistryEntry{}, ErrInvalidKey
	}
	return *e, nil
}

// MatchOf returns the key of the match userID belongs to.
func (r *Registry) MatchOf(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.members[userID]
	return key, ok
}

// Admit records userID as a member of key. It is idempotent for a user
// already in that match.
func (r *Registry) Admit(key, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		return ErrInvalidKey
	}
	if current, ok := r.members[userID]; ok && current != key {
		return ErrAlreadyInGame
	}
	if _, ok := r.members[userID]; !ok {
		r.admitted[userID] = r.now()
	}
	r.members[userID] = key
	return nil
}

// Seated marks userID's admission as used.
func (r *Registry) Seated(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.admitted, userID)
}

// ReleaseStale drops memberships of key admitted longer than maxAge ago
// whose users never took their seat. It returns the released users.
func (r *Registry) ReleaseStale(key string, maxAge time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-maxAge)
	var released []string
	for user, at := range r.admitted {
		if r.members[user] != key || at.After(cutoff) {
			continue
		}
		delete(r.admitted, user)
		delete(r.members, user)
		released = append(released, user)
	}
	return released
}

// Release forgets userID's membership.
func (r *Registry) Release(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, userID)
	delete(r.admitted, userID)
}

// Close removes key and every membership that points at it.
func (r *Registry) Close(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	for user, k := range r.members {
		if k == key {
			delete(r.members, user)
			delete(r.admitted, user)
		}
	}
}

// Update records the lobby state of key as seen by its match loop.
func (r *Registry) Update(key string, started bool, players int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[key]; ok {
		e.Started = started
		e.Players = players
	}
}

// Len returns the number of live matches.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
