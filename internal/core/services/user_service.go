package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

// UserService provisions the identities the engine tracks. Credentials live
// outside of this service.
type UserService struct {
	store domain.Store
}

func NewUserService(store domain.Store) *UserService {
	return &UserService{
		store: store,
	}
}

func (s *UserService) Provision(ctx context.Context, username string) (*domain.User, error) {
	user, err := domain.NewUser(uuid.NewString(), username)
	if err != nil {
		return nil, err
	}

	if err := s.store.Repos().Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("user service: failed to create user: %w", err)
	}

	return user, nil
}

// GetOrProvision returns the user with username, creating it on first use.
func (s *UserService) GetOrProvision(ctx context.Context, username string) (*domain.User, bool, error) {
	user, err := s.store.Repos().Users.GetByUsername(ctx, strings.TrimSpace(username))
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	user, err = s.Provision(ctx, username)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.store.Repos().Users.GetByID(ctx, id)
}
