package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain"
)

var _ ports.SessionStore = (*MemoryStore)(nil)

// MemoryStore sesiones en memoria de proceso; se usa cuando REDIS_URL está vacío.
// Las sesiones no sobreviven a un reinicio.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time // id → expiración
	now      func() time.Time
}

// NewMemoryStore crea el almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]time.Time{}, now: time.Now}
}

// Save guarda la sesión y aprovecha para purgar las expiradas.
func (s *MemoryStore) Save(ctx context.Context, sess ports.Session) error {
	now := s.now()
	if !sess.ExpiresAt.After(now) {
		return fmt.Errorf("%w: sesión ya expirada", domain.ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, exp := range s.sessions {
		if !exp.After(now) {
			delete(s.sessions, id)
		}
	}
	s.sessions[sess.ID] = sess.ExpiresAt
	return nil
}

// Exists informa si la sesión existe y no expiró.
func (s *MemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.sessions[id]
	return ok && exp.After(s.now()), nil
}

// Revoke elimina la sesión.
func (s *MemoryStore) Revoke(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
