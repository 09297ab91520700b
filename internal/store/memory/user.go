package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MonksterFX/fermentation-station/internal/domain"
	"github.com/MonksterFX/fermentation-station/internal/store"
)

// UserStore is an in-memory implementation of store.UserStore.
// Emails are compared case-insensitively.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*domain.User
	byEmail    map[string]uuid.UUID
	bcryptCost int
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty in-memory user store. A cost of zero
// selects the bcrypt default.
func NewUserStore(bcryptCost int) *UserStore {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserStore{
		byID:       make(map[uuid.UUID]*domain.User),
		byEmail:    make(map[string]uuid.UUID),
		bcryptCost: bcryptCost,
	}
}

// Create implements store.UserStore.Create. The plaintext password on the
// user is hashed and cleared before the user is stored.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return store.ErrEmailExists
	}

	user.HashedPassword = string(hashed)
	user.Password = ""

	stored := *user
	s.byID[user.ID] = &stored
	s.byEmail[key] = user.ID
	return nil
}

// GetByID implements store.UserStore.GetByID.
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[emailKey(email)]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	out := *s.byID[id]
	return &out, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
