// Package sales implements the proposal (teklif) use cases.
package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/crm"
	"github.com/isletme/backend/internal/domain/sales"
	"github.com/isletme/backend/internal/domain/shared"
)

// ProposalService handles proposals and their status flow
type ProposalService struct {
	proposalRepo sales.ProposalRepository
	customerRepo crm.CustomerRepository
	loc          *time.Location
	now          func() time.Time
}

// NewProposalService creates a new ProposalService. Proposal numbers use
// the calendar month in loc.
func NewProposalService(proposalRepo sales.ProposalRepository, customerRepo crm.CustomerRepository, loc *time.Location) *ProposalService {
	if loc == nil {
		loc = time.UTC
	}
	return &ProposalService{
		proposalRepo: proposalRepo,
		customerRepo: customerRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// Create numbers and stores a draft proposal
func (s *ProposalService) Create(ctx context.Context, tenantID uuid.UUID, req ProposalRequest) (*ProposalResponse, error) {
	if err := s.ensureCustomer(ctx, tenantID, req.CustomerID); err != nil {
		return nil, err
	}
	now := s.now().In(s.loc)
	seq, err := s.proposalRepo.CountInMonth(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}

	proposal, err := sales.NewProposal(tenantID, sales.FormatProposalNumber(now, seq+1), req.input(now))
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		proposal.SetCreatedBy(*req.CreatedBy)
	}
	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}
	response := ToProposalResponse(proposal)
	return &response, nil
}

// GetByID retrieves a proposal with its items
func (s *ProposalService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProposalResponse, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToProposalResponse(proposal)
	return &response, nil
}

// List lists proposals, newest first by default
func (s *ProposalService) List(ctx context.Context, tenantID uuid.UUID, filter ProposalListFilter) ([]ProposalResponse, int64, error) {
	domainFilter := filter.Filter(map[string]string{
		"status":      filter.Status,
		"customer_id": filter.CustomerID,
		"currency":    filter.Currency,
	})

	proposals, err := s.proposalRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.proposalRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToProposalResponses(proposals), total, nil
}

// ListByCustomer lists one customer's proposals
func (s *ProposalService) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]ProposalResponse, error) {
	proposals, err := s.proposalRepo.FindByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	return ToProposalResponses(proposals), nil
}

// Update replaces a draft proposal and its items
func (s *ProposalService) Update(ctx context.Context, tenantID, id uuid.UUID, req ProposalRequest) (*ProposalResponse, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != proposal.CustomerID {
		if err := s.ensureCustomer(ctx, tenantID, req.CustomerID); err != nil {
			return nil, err
		}
	}
	if err := proposal.Update(req.input(proposal.IssueDate)); err != nil {
		return nil, err
	}
	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}
	response := ToProposalResponse(proposal)
	return &response, nil
}

// Delete deletes a proposal and its items
func (s *ProposalService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.proposalRepo.Delete(ctx, tenantID, id)
}

// Send moves a draft to sent
func (s *ProposalService) Send(ctx context.Context, tenantID, id uuid.UUID) (*ProposalResponse, error) {
	return s.transition(ctx, tenantID, id, (*sales.Proposal).Send)
}

// Accept records the customer's acceptance of a sent proposal
func (s *ProposalService) Accept(ctx context.Context, tenantID, id uuid.UUID) (*ProposalResponse, error) {
	return s.transition(ctx, tenantID, id, (*sales.Proposal).Accept)
}

// Reject records the customer's rejection of a sent proposal
func (s *ProposalService) Reject(ctx context.Context, tenantID, id uuid.UUID) (*ProposalResponse, error) {
	return s.transition(ctx, tenantID, id, (*sales.Proposal).Reject)
}

// Expire marks a sent proposal as expired
func (s *ProposalService) Expire(ctx context.Context, tenantID, id uuid.UUID) (*ProposalResponse, error) {
	return s.transition(ctx, tenantID, id, (*sales.Proposal).Expire)
}

func (s *ProposalService) transition(ctx context.Context, tenantID, id uuid.UUID, apply func(*sales.Proposal) error) (*ProposalResponse, error) {
	proposal, err := s.proposalRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(proposal); err != nil {
		return nil, err
	}
	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, err
	}
	response := ToProposalResponse(proposal)
	return &response, nil
}

func (s *ProposalService) ensureCustomer(ctx context.Context, tenantID, customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return shared.RequiredField("customer_id")
	}
	_, err := s.customerRepo.FindByID(ctx, tenantID, customerID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewFieldError("customer_id", "Müşteri bulunamadı")
	}
	return err
}
