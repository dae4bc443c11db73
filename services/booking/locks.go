package booking

import "sync"

// providerLockStore holds one mutex per provider id. Admission decisions
// hold the provider's mutex across the read-check-write sequence, so two
// concurrent creates for overlapping intervals on one provider serialize
// and the loser sees the winner's booking in its candidate set.
type providerLockStore struct {
	locks map[string]*sync.Mutex
	mu    sync.Mutex
}

func newProviderLockStore() *providerLockStore {
	return &providerLockStore{locks: make(map[string]*sync.Mutex)}
}

// get returns the mutex for a given provider, creating one if it doesn't exist.
func (s *providerLockStore) get(providerID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[providerID]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[providerID] = lock
	}
	return lock
}
