package ports

import (
	"context"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
)

// RegisterInput carries a new account registration.
type RegisterInput struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
	Phone     string
	Location  *domain.Location
	Company   *domain.Company
	Provider  *domain.ProviderProfile
}

// UpdateProfileInput carries a profile mutation; nil fields stay untouched.
// Role-specific sections are only applied to accounts of the matching role.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Phone     string
	Location  *domain.Location
	Company   *domain.Company
	Provider  *domain.ProviderProfile
}

// AuthService implements registration, login and profile management.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
}
