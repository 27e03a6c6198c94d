package character

import (
	"context"
	"sync"

	"github.com/osse101/KnightlyTreasures_Go/internal/concurrency"
	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/repository"
)

// Store is the character repository shared by every service that edits character
// sheets. Characters whose last save failed shadow the underlying store until a
// later save succeeds. Callers hold WithLock around each read-modify-write.
type Store struct {
	repository.Character
	locks *concurrency.LockManager

	mu      sync.Mutex
	pending map[string]domain.Character
}

// NewStore wraps base. A nil locks gets a private LockManager.
func NewStore(base repository.Character, locks *concurrency.LockManager) *Store {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &Store{
		Character: base,
		locks:     locks,
		pending:   make(map[string]domain.Character),
	}
}

// WithLock runs fn while holding the edit lock for character id
func (s *Store) WithLock(id string, fn func() error) error {
	return s.locks.WithLock(id, fn)
}

func (s *Store) GetCharacter(ctx context.Context, id string) (*domain.Character, error) {
	s.mu.Lock()
	c, ok := s.pending[id]
	s.mu.Unlock()
	if ok {
		c = c.Clone()
		return &c, nil
	}
	return s.Character.GetCharacter(ctx, id)
}

// ListCharacters returns stored characters with pending copies swapped in.
// Order is unspecified.
func (s *Store) ListCharacters(ctx context.Context) ([]domain.Character, error) {
	chars, err := s.Character.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(s.pending))
	for i, c := range chars {
		if p, ok := s.pending[c.ID]; ok {
			chars[i] = p.Clone()
			seen[c.ID] = struct{}{}
		}
	}
	for id, p := range s.pending {
		if _, ok := seen[id]; !ok {
			chars = append(chars, p.Clone())
		}
	}
	return chars, nil
}

// SaveCharacter writes c through. On failure c is kept as a pending copy and the
// error is returned.
func (s *Store) SaveCharacter(ctx context.Context, c domain.Character) error {
	err := s.Character.SaveCharacter(ctx, c)
	if err != nil {
		s.Hold(c)
	} else {
		s.Release(c.ID)
	}
	return err
}

// Hold keeps c as the local copy after a write made outside SaveCharacter failed
func (s *Store) Hold(c domain.Character) {
	s.mu.Lock()
	s.pending[c.ID] = c.Clone()
	s.mu.Unlock()
}

// Release drops the local copy once c.ID has been written elsewhere
func (s *Store) Release(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// Pending reports whether id has an unsaved local copy
func (s *Store) Pending(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[id]
	return ok
}
