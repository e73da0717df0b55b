package domain

import "time"

const (
	RoleProjectOwner    = "project_owner"
	RoleServiceProvider = "service_provider"
	RoleAdmin           = "admin"
)

// ValidRole reports whether role is one of the registrable marketplace roles.
// Admin accounts are provisioned out of band and cannot self-register.
func ValidRole(role string) bool {
	return role == RoleProjectOwner || role == RoleServiceProvider
}

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Location represents a physical address.
type Location struct {
	Address     string       `json:"address" bson:"address"`
	City        string       `json:"city" bson:"city"`
	State       string       `json:"state" bson:"state"`
	ZipCode     string       `json:"zip_code,omitempty" bson:"zip_code,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

// Company holds the project-owner-specific profile section.
type Company struct {
	Name        string `json:"name,omitempty" bson:"name,omitempty"`
	Website     string `json:"website,omitempty" bson:"website,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// ProviderProfile holds the service-provider-specific profile section.
type ProviderProfile struct {
	Skills     []string `json:"skills,omitempty" bson:"skills,omitempty"`
	Experience struct {
		Years       int    `json:"years,omitempty" bson:"years,omitempty"`
		Description string `json:"description,omitempty" bson:"description,omitempty"`
	} `json:"experience,omitempty" bson:"experience,omitempty"`
	HourlyRate float64 `json:"hourly_rate,omitempty" bson:"hourly_rate,omitempty"`
}

// User models an authenticated actor: a project owner, a service provider, or
// an admin. The password hash never leaves the process.
type User struct {
	ID           string           `json:"id" bson:"_id,omitempty"`
	Email        string           `json:"email" bson:"email"`
	PasswordHash string           `json:"-" bson:"password_hash"`
	Role         string           `json:"role" bson:"role"`
	FirstName    string           `json:"first_name" bson:"first_name"`
	LastName     string           `json:"last_name" bson:"last_name"`
	Phone        string           `json:"phone" bson:"phone"`
	Location     *Location        `json:"location,omitempty" bson:"location,omitempty"`
	ProfileImage string           `json:"profile_image,omitempty" bson:"profile_image,omitempty"`
	IsVerified   bool             `json:"is_verified" bson:"is_verified"`
	IsActive     bool             `json:"is_active" bson:"is_active"`
	Company      *Company         `json:"company,omitempty" bson:"company,omitempty"`
	Provider     *ProviderProfile `json:"provider,omitempty" bson:"provider,omitempty"`
	CreatedAt    time.Time        `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" bson:"updated_at"`
}

// FullName is derived at read time, never persisted.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserRef is the redacted participant view embedded in public payloads.
type UserRef struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	FirstName string `json:"first_name" bson:"first_name"`
	LastName  string `json:"last_name" bson:"last_name"`
	Email     string `json:"email" bson:"email"`
}

// Ref returns the redacted reference for u.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}
