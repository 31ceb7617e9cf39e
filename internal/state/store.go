package state

import (
	"sync"
	"time"

	"github.com/nconklindev/pwrzones/internal/types"

	"github.com/google/uuid"
)

// Snapshot is one published roster. Participants must not be modified after publishing.
type Snapshot struct {
	ID           uuid.UUID
	Participants []types.Participant
	PublishedAt  time.Time
}

// Store holds the current roster. Publish replaces it wholesale, so readers
// always see either the previous roster or the new one.
type Store struct {
	current Snapshot
	mu      sync.RWMutex
}

func NewStore() *Store {
	return &Store{}
}

// Publish replaces the current roster and returns the new snapshot.
func (s *Store) Publish(participants []types.Participant) Snapshot {
	snap := Snapshot{
		ID:           uuid.New(),
		Participants: participants,
		PublishedAt:  time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
	return snap
}

func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Participant returns the participant at index i of the current roster.
func (s *Store) Participant(i int) (types.Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.current.Participants) {
		return types.Participant{}, false
	}
	return s.current.Participants[i], true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.current.Participants)
}
