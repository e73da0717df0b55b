package handler

import "github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type coordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locationRequest struct {
	Address     string              `json:"address"`
	City        string              `json:"city"    validate:"required"`
	State       string              `json:"state"   validate:"required"`
	ZipCode     string              `json:"zip_code"`
	Coordinates *coordinatesRequest `json:"coordinates"`
}

type companyRequest struct {
	Name        string `json:"name" validate:"required"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type providerRequest struct {
	Skills                []string `json:"skills"`
	ExperienceYears       int      `json:"experience_years" validate:"gte=0"`
	ExperienceDescription string   `json:"experience_description"`
	HourlyRate            float64  `json:"hourly_rate" validate:"gte=0"`
}

type registerRequest struct {
	Email     string           `json:"email"      validate:"required,email"`
	Password  string           `json:"password"   validate:"required,min=6"`
	Role      string           `json:"role"       validate:"required,oneof=project_owner service_provider"`
	FirstName string           `json:"first_name" validate:"required"`
	LastName  string           `json:"last_name"  validate:"required"`
	Phone     string           `json:"phone"`
	Location  *locationRequest `json:"location"`
	Company   *companyRequest  `json:"company"`
	Provider  *providerRequest `json:"provider"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Phone     string           `json:"phone"`
	Location  *locationRequest `json:"location"`
	Company   *companyRequest  `json:"company"`
	Provider  *providerRequest `json:"provider"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user"`
}

func toLocation(r *locationRequest) *domain.Location {
	if r == nil {
		return nil
	}
	loc := &domain.Location{
		Address: r.Address,
		City:    r.City,
		State:   r.State,
		ZipCode: r.ZipCode,
	}
	if r.Coordinates != nil {
		loc.Coordinates = &domain.Coordinates{Lat: r.Coordinates.Lat, Lng: r.Coordinates.Lng}
	}
	return loc
}

func toCompany(r *companyRequest) *domain.Company {
	if r == nil {
		return nil
	}
	return &domain.Company{
		Name:        r.Name,
		Website:     r.Website,
		Description: r.Description,
	}
}

func toProvider(r *providerRequest) *domain.ProviderProfile {
	if r == nil {
		return nil
	}
	p := &domain.ProviderProfile{
		Skills:     r.Skills,
		HourlyRate: r.HourlyRate,
	}
	p.Experience.Years = r.ExperienceYears
	p.Experience.Description = r.ExperienceDescription
	return p
}
