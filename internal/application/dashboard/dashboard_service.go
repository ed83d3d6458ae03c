// Package dashboard aggregates the figures shown on the home screen.
package dashboard

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appfinance "github.com/isletme/backend/internal/application/finance"
	"github.com/isletme/backend/internal/domain/finance"
	"github.com/isletme/backend/internal/domain/opex"
	"github.com/isletme/backend/internal/domain/servicedesk"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/cache"
	"github.com/isletme/backend/internal/infrastructure/logger"
)

// DefaultCacheTTL bounds how stale a cached summary may be
const DefaultCacheTTL = 30 * time.Second

// OpexViewer computes the OPEX grid of a year
type OpexViewer interface {
	View(ctx context.Context, tenantID uuid.UUID, year int) (*opex.View, error)
}

// Repositories groups the read models the summary draws from
type Repositories struct {
	BankAccounts    finance.BankAccountRepository
	Loans           finance.LoanRepository
	Checks          finance.CheckRepository
	ServiceRequests servicedesk.ServiceRequestRepository
	Tasks           servicedesk.TaskRepository
}

// BalanceByCurrency is the summed balance of active accounts in one currency
type BalanceByCurrency struct {
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	Accounts int             `json:"accounts"`
}

// Summary is the dashboard payload
type Summary struct {
	BankBalances          []BalanceByCurrency `json:"bank_balances"`
	OpenServiceRequests   int64               `json:"open_service_requests"`
	ChecksDueCount        int                 `json:"checks_due_count"`
	ChecksDueAmount       decimal.Decimal     `json:"checks_due_amount"`
	LoanRemainingBalance  decimal.Decimal     `json:"loan_remaining_balance"`
	ActiveLoans           int                 `json:"active_loans"`
	TasksDueToday         int                 `json:"tasks_due_today"`
	OpexCurrentMonthTotal decimal.Decimal     `json:"opex_current_month_total"`
	GeneratedAt           time.Time           `json:"generated_at"`
}

// Service builds and caches the dashboard summary
type Service struct {
	repos Repositories
	opex  OpexViewer
	cache cache.Store
	ttl   time.Duration
	loc   *time.Location
	now   func() time.Time
}

// NewService creates a new dashboard Service. store may be nil to disable caching.
func NewService(repos Repositories, opexViewer OpexViewer, store cache.Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repos: repos,
		opex:  opexViewer,
		cache: store,
		ttl:   DefaultCacheTTL,
		loc:   loc,
		now:   time.Now,
	}
}

// Summary returns the tenant's dashboard figures, served from cache when fresh
func (s *Service) Summary(ctx context.Context, tenantID uuid.UUID) (*Summary, error) {
	key := cacheKey(tenantID)
	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	summary, err := s.build(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
				logger.L(ctx).Warn("Failed to cache dashboard summary", zap.Error(err))
			}
		}
	}
	return summary, nil
}

// Invalidate drops the cached summary of a tenant
func (s *Service) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, cacheKey(tenantID))
}

func (s *Service) cached(ctx context.Context, key string) (*Summary, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.L(ctx).Warn("Dashboard cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false
	}
	return &summary, true
}

func (s *Service) build(ctx context.Context, tenantID uuid.UUID) (*Summary, error) {
	now := s.now().In(s.loc)
	summary := &Summary{GeneratedAt: now}

	accounts, err := s.repos.BankAccounts.FindAll(ctx, tenantID, shared.Filter{
		Filters: map[string]any{"is_active": true},
	})
	if err != nil {
		return nil, err
	}
	summary.BankBalances = balancesByCurrency(accounts)

	if summary.OpenServiceRequests, err = s.repos.ServiceRequests.CountOpen(ctx, tenantID); err != nil {
		return nil, err
	}

	from, to := appfinance.DueWindow(now, appfinance.DefaultUpcomingDays)
	checks, err := s.repos.Checks.FindDueBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	summary.ChecksDueCount = len(checks)
	for _, c := range checks {
		summary.ChecksDueAmount = summary.ChecksDueAmount.Add(c.Amount)
	}

	loans, err := s.repos.Loans.FindAll(ctx, tenantID, shared.Filter{
		Filters: map[string]any{"status": string(finance.LoanStatusActive)},
	})
	if err != nil {
		return nil, err
	}
	summary.ActiveLoans = len(loans)
	for _, l := range loans {
		summary.LoanRemainingBalance = summary.LoanRemainingBalance.Add(l.RemainingBalance)
	}

	from, to = appfinance.DueWindow(now, 0)
	tasks, err := s.repos.Tasks.FindDueBetween(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	summary.TasksDueToday = len(tasks)

	view, err := s.opex.View(ctx, tenantID, now.Year())
	if err != nil {
		return nil, err
	}
	summary.OpexCurrentMonthTotal = view.ColumnTotals[int(now.Month())-1]

	return summary, nil
}

func balancesByCurrency(accounts []finance.BankAccount) []BalanceByCurrency {
	byCurrency := make(map[string]*BalanceByCurrency)
	for _, a := range accounts {
		cur := string(a.Currency)
		b, ok := byCurrency[cur]
		if !ok {
			b = &BalanceByCurrency{Currency: cur}
			byCurrency[cur] = b
		}
		b.Balance = b.Balance.Add(a.Balance)
		b.Accounts++
	}
	out := make([]BalanceByCurrency, 0, len(byCurrency))
	for _, b := range byCurrency {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

func cacheKey(tenantID uuid.UUID) string {
	return "dashboard:summary:" + tenantID.String()
}
