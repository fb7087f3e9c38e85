package services

import (
	"context"

	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

// SharedHabitHook is called inside the toggle transaction whenever a habit
// that belongs to a group is mutated. Returning an error aborts the toggle.
type SharedHabitHook interface {
	OnSharedHabitMutated(ctx context.Context, repos domain.Repositories, sharedID string) error
}

// NoopSharedHabitHook is the default: group habits carry no extra behaviour yet.
type NoopSharedHabitHook struct{}

func (NoopSharedHabitHook) OnSharedHabitMutated(ctx context.Context, repos domain.Repositories, sharedID string) error {
	return nil
}
