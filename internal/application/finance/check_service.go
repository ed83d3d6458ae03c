package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/finance"
)

const (
	// DefaultUpcomingDays is the window of the upcoming checks list
	DefaultUpcomingDays = 7
	maxUpcomingDays     = 365
)

// CheckService handles received and issued checks
type CheckService struct {
	checkRepo finance.CheckRepository
	loc       *time.Location
	now       func() time.Time
}

// NewCheckService creates a new CheckService. Due-date windows are computed
// in loc.
func NewCheckService(checkRepo finance.CheckRepository, loc *time.Location) *CheckService {
	if loc == nil {
		loc = time.UTC
	}
	return &CheckService{checkRepo: checkRepo, loc: loc, now: time.Now}
}

// Create records a check
func (s *CheckService) Create(ctx context.Context, tenantID uuid.UUID, req CheckRequest) (*CheckResponse, error) {
	check, err := finance.NewCheck(tenantID, req.input())
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		check.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.checkRepo.Create(ctx, check); err != nil {
		return nil, err
	}
	response := ToCheckResponse(check)
	return &response, nil
}

// GetByID retrieves a check by ID
func (s *CheckService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CheckResponse, error) {
	check, err := s.checkRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToCheckResponse(check)
	return &response, nil
}

// List lists checks, earliest due date first by default
func (s *CheckService) List(ctx context.Context, tenantID uuid.UUID, filter CheckListFilter) ([]CheckResponse, int64, error) {
	domainFilter := filter.Filter(map[string]string{
		"status":      filter.Status,
		"type":        filter.Type,
		"customer_id": filter.CustomerID,
	})
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "due_date"
		domainFilter.OrderDir = "asc"
	}

	checks, err := s.checkRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.checkRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToCheckResponses(checks), total, nil
}

// Upcoming lists pending checks due from today through the next days days
func (s *CheckService) Upcoming(ctx context.Context, tenantID uuid.UUID, days int) ([]CheckResponse, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	days = min(days, maxUpcomingDays)

	from, to := DueWindow(s.now().In(s.loc), days)
	checks, err := s.checkRepo.FindDueBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	return ToCheckResponses(checks), nil
}

// Update replaces a check's fields
func (s *CheckService) Update(ctx context.Context, tenantID, id uuid.UUID, req CheckRequest) (*CheckResponse, error) {
	check, err := s.checkRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := check.Update(req.input()); err != nil {
		return nil, err
	}
	if err := s.checkRepo.Update(ctx, check); err != nil {
		return nil, err
	}
	response := ToCheckResponse(check)
	return &response, nil
}

// Delete deletes a check
func (s *CheckService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.checkRepo.Delete(ctx, tenantID, id)
}

// DueWindow returns [start of today, start of the day after today+days)
func DueWindow(now time.Time, days int) (time.Time, time.Time) {
	y, m, d := now.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 0, days+1)
}
