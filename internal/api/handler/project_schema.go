package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

// createProjectRequest is the JSON shape of a project creation.
type createProjectRequest struct {
	Title           string          `json:"title"       validate:"required,min=3"`
	Description     string          `json:"description" validate:"required,min=10"`
	Category        string          `json:"category"    validate:"required,oneof=residential commercial industrial infrastructure renovation other"`
	Location        locationRequest `json:"location"    validate:"required"`
	Budget          budgetRequest   `json:"budget"      validate:"required"`
	Timeline        timelineRequest `json:"timeline"    validate:"required"`
	Specifications  specsRequest    `json:"specifications"`
	BiddingDeadline time.Time       `json:"bidding_deadline" validate:"required"`
	Publish         bool            `json:"publish"`
}

type budgetRequest struct {
	Min      float64 `json:"min"      validate:"gte=0"`
	Max      float64 `json:"max"      validate:"required,gtefield=Min"`
	Currency string  `json:"currency" validate:"required,len=3"`
}

type timelineRequest struct {
	StartDate         time.Time `json:"start_date" validate:"required"`
	EndDate           time.Time `json:"end_date"   validate:"required,gtfield=StartDate"`
	EstimatedDuration int       `json:"estimated_duration" validate:"required,gt=0"`
}

type specsRequest struct {
	Area                float64  `json:"area"   validate:"gte=0"`
	Floors              int      `json:"floors" validate:"gte=0"`
	Requirements        []string `json:"requirements"`
	SpecialRequirements string   `json:"special_requirements"`
}

type updateProjectRequest struct {
	Title           *string          `json:"title"       validate:"omitempty,min=3"`
	Description     *string          `json:"description" validate:"omitempty,min=10"`
	Category        *string          `json:"category"    validate:"omitempty,oneof=residential commercial industrial infrastructure renovation other"`
	Location        *locationRequest `json:"location"`
	Budget          *budgetRequest   `json:"budget"`
	Timeline        *timelineRequest `json:"timeline"`
	Specifications  *specsRequest    `json:"specifications"`
	BiddingDeadline *time.Time       `json:"bidding_deadline"`
}

// projectForm mirrors createProjectRequest with string leaves for multipart
// intake; see decodeForm.
type projectForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    struct {
		Address string `json:"address"`
		City    string `json:"city"`
		State   string `json:"state"`
		ZipCode string `json:"zip_code"`
	} `json:"location"`
	Budget struct {
		Min      string `json:"min"`
		Max      string `json:"max"`
		Currency string `json:"currency"`
	} `json:"budget"`
	Timeline struct {
		StartDate         string `json:"start_date"`
		EndDate           string `json:"end_date"`
		EstimatedDuration string `json:"estimated_duration"`
	} `json:"timeline"`
	Specifications struct {
		Area                string   `json:"area"`
		Floors              string   `json:"floors"`
		Requirements        []string `json:"requirements"`
		SpecialRequirements string   `json:"special_requirements"`
	} `json:"specifications"`
	BiddingDeadline string `json:"bidding_deadline"`
	Publish         string `json:"publish"`
}

// toCreateRequest converts the string-leaved form into the typed request,
// which then goes through the same validation as the JSON path.
func (f projectForm) toCreateRequest() (createProjectRequest, error) {
	var req createProjectRequest
	req.Title = f.Title
	req.Description = f.Description
	req.Category = f.Category
	req.Location = locationRequest{
		Address: f.Location.Address,
		City:    f.Location.City,
		State:   f.Location.State,
		ZipCode: f.Location.ZipCode,
	}
	req.Publish = f.Publish == "true"
	req.Budget.Currency = f.Budget.Currency
	req.Specifications.Requirements = f.Specifications.Requirements
	req.Specifications.SpecialRequirements = f.Specifications.SpecialRequirements

	var err error
	if req.Budget.Min, err = parseFormFloat("budget.min", f.Budget.Min); err != nil {
		return req, err
	}
	if req.Budget.Max, err = parseFormFloat("budget.max", f.Budget.Max); err != nil {
		return req, err
	}
	if req.Specifications.Area, err = parseFormFloat("specifications.area", f.Specifications.Area); err != nil {
		return req, err
	}
	if req.Specifications.Floors, err = parseFormInt("specifications.floors", f.Specifications.Floors); err != nil {
		return req, err
	}
	if req.Timeline.EstimatedDuration, err = parseFormInt("timeline.estimated_duration", f.Timeline.EstimatedDuration); err != nil {
		return req, err
	}
	if req.Timeline.StartDate, err = parseFormTime("timeline.start_date", f.Timeline.StartDate); err != nil {
		return req, err
	}
	if req.Timeline.EndDate, err = parseFormTime("timeline.end_date", f.Timeline.EndDate); err != nil {
		return req, err
	}
	if req.BiddingDeadline, err = parseFormTime("bidding_deadline", f.BiddingDeadline); err != nil {
		return req, err
	}
	return req, nil
}

// toUpdateRequest converts the present form fields into a partial update;
// empty leaves stay nil and leave the stored value untouched.
func (f projectForm) toUpdateRequest() (updateProjectRequest, error) {
	var req updateProjectRequest
	if f.Title != "" {
		req.Title = &f.Title
	}
	if f.Description != "" {
		req.Description = &f.Description
	}
	if f.Category != "" {
		req.Category = &f.Category
	}
	if f.Location.City != "" || f.Location.State != "" || f.Location.Address != "" {
		req.Location = &locationRequest{
			Address: f.Location.Address,
			City:    f.Location.City,
			State:   f.Location.State,
			ZipCode: f.Location.ZipCode,
		}
	}
	if f.Budget.Min != "" || f.Budget.Max != "" {
		min, err := parseFormFloat("budget.min", f.Budget.Min)
		if err != nil {
			return req, err
		}
		max, err := parseFormFloat("budget.max", f.Budget.Max)
		if err != nil {
			return req, err
		}
		req.Budget = &budgetRequest{Min: min, Max: max, Currency: f.Budget.Currency}
	}
	if f.Timeline.StartDate != "" || f.Timeline.EndDate != "" {
		start, err := parseFormTime("timeline.start_date", f.Timeline.StartDate)
		if err != nil {
			return req, err
		}
		end, err := parseFormTime("timeline.end_date", f.Timeline.EndDate)
		if err != nil {
			return req, err
		}
		duration, err := parseFormInt("timeline.estimated_duration", f.Timeline.EstimatedDuration)
		if err != nil {
			return req, err
		}
		req.Timeline = &timelineRequest{StartDate: start, EndDate: end, EstimatedDuration: duration}
	}
	if f.Specifications.Area != "" || f.Specifications.Floors != "" || len(f.Specifications.Requirements) > 0 || f.Specifications.SpecialRequirements != "" {
		area, err := parseFormFloat("specifications.area", f.Specifications.Area)
		if err != nil {
			return req, err
		}
		floors, err := parseFormInt("specifications.floors", f.Specifications.Floors)
		if err != nil {
			return req, err
		}
		req.Specifications = &specsRequest{
			Area:                area,
			Floors:              floors,
			Requirements:        f.Specifications.Requirements,
			SpecialRequirements: f.Specifications.SpecialRequirements,
		}
	}
	if f.BiddingDeadline != "" {
		deadline, err := parseFormTime("bidding_deadline", f.BiddingDeadline)
		if err != nil {
			return req, err
		}
		req.BiddingDeadline = &deadline
	}
	return req, nil
}

func parseFormFloat(field, v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return f, nil
}

func parseFormInt(field, v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	return n, nil
}

func parseFormTime(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		// Date-only values are accepted for timeline boundaries.
		t, err = time.Parse("2006-01-02", v)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be an RFC 3339 timestamp", field)
	}
	return t, nil
}

// --- Responses ---

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listProjectsResponse struct {
	Data       []domain.PublicProject `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}

type projectDetailResponse struct {
	Project           *domain.Project `json:"project"`
	Owner             *domain.UserRef `json:"owner,omitempty"`
	AssignedArchitect *domain.UserRef `json:"assigned_architect,omitempty"`
	BidCount          int             `json:"bid_count"`
	DaysUntilDeadline int             `json:"days_until_deadline"`
}

// --- Request → Service input ---

func toCreateProjectInput(req createProjectRequest, files map[string][]domain.FileRef) ports.CreateProjectInput {
	loc := toLocation(&req.Location)
	return ports.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    *loc,
		Budget: domain.Budget{
			Min:      req.Budget.Min,
			Max:      req.Budget.Max,
			Currency: req.Budget.Currency,
		},
		Timeline: domain.Timeline{
			StartDate:         req.Timeline.StartDate,
			EndDate:           req.Timeline.EndDate,
			EstimatedDuration: req.Timeline.EstimatedDuration,
		},
		Specifications: domain.Specifications{
			Area:                req.Specifications.Area,
			Floors:              req.Specifications.Floors,
			Requirements:        req.Specifications.Requirements,
			SpecialRequirements: req.Specifications.SpecialRequirements,
		},
		BiddingDeadline: req.BiddingDeadline,
		Files:           toProjectFiles(files),
		Publish:         req.Publish,
	}
}

func toUpdateProjectInput(req updateProjectRequest, files map[string][]domain.FileRef) ports.UpdateProjectInput {
	in := ports.UpdateProjectInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		BiddingDeadline: req.BiddingDeadline,
	}
	if req.Location != nil {
		in.Location = toLocation(req.Location)
	}
	if req.Budget != nil {
		in.Budget = &domain.Budget{
			Min:      req.Budget.Min,
			Max:      req.Budget.Max,
			Currency: req.Budget.Currency,
		}
	}
	if req.Timeline != nil {
		in.Timeline = &domain.Timeline{
			StartDate:         req.Timeline.StartDate,
			EndDate:           req.Timeline.EndDate,
			EstimatedDuration: req.Timeline.EstimatedDuration,
		}
	}
	if req.Specifications != nil {
		in.Specifications = &domain.Specifications{
			Area:                req.Specifications.Area,
			Floors:              req.Specifications.Floors,
			Requirements:        req.Specifications.Requirements,
			SpecialRequirements: req.Specifications.SpecialRequirements,
		}
	}
	if len(files) > 0 {
		pf := toProjectFiles(files)
		in.Files = &pf
	}
	return in
}

func toProjectFiles(files map[string][]domain.FileRef) domain.ProjectFiles {
	return domain.ProjectFiles{
		PropertyImages: files["propertyImages"],
		BOQ:            files["boq"],
		Drawings:       files["drawings"],
		OtherDocuments: files["otherDocuments"],
	}
}

func toDetailResponse(d *ports.ProjectDetail) projectDetailResponse {
	return projectDetailResponse{
		Project:           d.Project,
		Owner:             d.Owner,
		AssignedArchitect: d.AssignedArchitect,
		BidCount:          d.BidCount,
		DaysUntilDeadline: d.DaysUntilDeadline,
	}
}
