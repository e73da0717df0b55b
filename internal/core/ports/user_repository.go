package ports

import (
	"context"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// UserRepository defines persistence for marketplace accounts.
type UserRepository interface {
	// Create inserts a user; returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateProfile applies the given profile fields; nil map entries are ignored.
	UpdateProfile(ctx context.Context, id string, fields map[string]any) (*domain.User, error)
}
