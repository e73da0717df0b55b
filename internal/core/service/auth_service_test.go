package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

const testSecret = "test-secret"

func newAuthFixture() (*AuthService, *memUsers) {
	users := newMemUsers()
	return NewAuthService(users, testSecret, time.Hour), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	token, user, err := svc.Register(ctx, ports.RegisterInput{
		Email:     "owner@example.com",
		Password:  "secret123",
		Role:      domain.RoleProjectOwner,
		FirstName: "Asha",
		LastName:  "Rao",
		Company:   &domain.Company{Name: "Rao Builders"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" || !user.IsActive {
		t.Fatalf("expected active user with id, got %+v", user)
	}
	if user.PasswordHash == "secret123" {
		t.Fatal("password must not be stored in the clear")
	}
	if user.Company == nil || user.Company.Name != "Rao Builders" {
		t.Fatal("expected company section stored for project owner")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims["user_id"] != user.ID || claims["role"] != domain.RoleProjectOwner {
		t.Fatalf("unexpected claims: %v", claims)
	}

	loginToken, loginUser, err := svc.Login(ctx, "owner@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loginToken == "" || loginUser.ID != user.ID {
		t.Fatal("expected login to return a token for the same user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()
	in := ports.RegisterInput{Email: "dup@example.com", Password: "secret123", Role: domain.RoleServiceProvider}

	if _, _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, err := svc.Register(ctx, in)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	svc, _ := newAuthFixture()

	for _, role := range []string{"", "admin", "superuser"} {
		_, _, err := svc.Register(context.Background(), ports.RegisterInput{Email: "x@example.com", Password: "secret123", Role: role})
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("role %q: expected ErrInvalidCredentials, got %v", role, err)
		}
	}
}

func TestRegisterProviderSection(t *testing.T) {
	svc, _ := newAuthFixture()

	provider := &domain.ProviderProfile{Skills: []string{"masonry"}, HourlyRate: 40}
	_, user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "pro@example.com",
		Password: "secret123",
		Role:     domain.RoleServiceProvider,
		Company:  &domain.Company{Name: "should be ignored"},
		Provider: provider,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Provider == nil || user.Provider.HourlyRate != 40 {
		t.Fatal("expected provider section stored")
	}
	if user.Company != nil {
		t.Fatal("company section must not be stored for a provider")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()
	if _, _, err := svc.Register(ctx, ports.RegisterInput{Email: "a@example.com", Password: "secret123", Role: domain.RoleProjectOwner}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := svc.Login(ctx, "a@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()
	_, user, err := svc.Register(ctx, ports.RegisterInput{Email: "a@example.com", Password: "secret123", Role: domain.RoleProjectOwner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	users.byID[user.ID].IsActive = false

	_, _, err = svc.Login(ctx, "a@example.com", "secret123")
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestUpdateProfileRoleSections(t *testing.T) {
	svc, users := newAuthFixture()
	ctx := context.Background()
	_, owner, err := svc.Register(ctx, ports.RegisterInput{Email: "o@example.com", Password: "secret123", Role: domain.RoleProjectOwner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, owner.ID, ports.UpdateProfileInput{
		FirstName: "Asha",
		Provider:  &domain.ProviderProfile{HourlyRate: 10},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstName != "Asha" {
		t.Fatalf("expected first name updated, got %q", updated.FirstName)
	}
	// The provider section never applies to a project owner account.
	if users.byID[owner.ID].Provider != nil {
		t.Fatal("provider section must not be applied to a project owner")
	}
}
