// Package opex implements the operating expense matrix: loading the grid,
// debounced cell edits, bulk save and CSV exchange.
package opex

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/isletme/backend/internal/domain/hr"
	"github.com/isletme/backend/internal/domain/opex"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/infrastructure/config"
	"github.com/isletme/backend/internal/infrastructure/logger"
	"github.com/isletme/backend/internal/infrastructure/scheduler"
	"github.com/isletme/backend/internal/infrastructure/telemetry"
)

const defaultWriteTimeout = 10 * time.Second

// ErrSaverStopped is returned for edits arriving during shutdown
var ErrSaverStopped = shared.NewDomainError("SERVICE_UNAVAILABLE", "Sunucu kapanıyor, değişiklik kaydedilemedi")

type cellRef struct {
	TenantID uuid.UUID
	opex.Key
}

// MatrixService serves the OPEX matrix of a tenant. Edited cells are kept
// pending in memory and written one by one after a quiet period; a pending
// value overlays the stored one whenever the grid is loaded.
type MatrixService struct {
	entryRepo    opex.EntryRepository
	employeeRepo hr.EmployeeRepository
	taxonomy     opex.Taxonomy
	delay        time.Duration
	writeTimeout time.Duration
	saver        *scheduler.Debouncer[cellRef, decimal.Decimal]
	clock        scheduler.Clock
	metrics      *telemetry.Metrics
	logger       *zap.Logger
}

// Option configures a MatrixService
type Option func(*MatrixService)

// WithClock drives the debounce timers from c
func WithClock(c scheduler.Clock) Option {
	return func(s *MatrixService) { s.clock = c }
}

// WithMetrics records cell writes and bulk saves on m
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *MatrixService) { s.metrics = m }
}

// WithLogger sets the logger of background saves
func WithLogger(l *zap.Logger) Option {
	return func(s *MatrixService) { s.logger = l }
}

// NewMatrixService creates a new MatrixService on the default taxonomy
func NewMatrixService(entryRepo opex.EntryRepository, employeeRepo hr.EmployeeRepository, cfg config.OpexConfig, opts ...Option) *MatrixService {
	s := &MatrixService{
		entryRepo:    entryRepo,
		employeeRepo: employeeRepo,
		taxonomy:     opex.DefaultTaxonomy,
		delay:        cfg.DebounceInterval,
		writeTimeout: defaultWriteTimeout,
		clock:        scheduler.RealClock(),
		metrics:      telemetry.NopMetrics(),
		logger:       zap.NewNop(),
	}
	if s.delay <= 0 {
		s.delay = time.Second
	}
	for _, opt := range opts {
		opt(s)
	}
	s.saver = scheduler.NewDebouncer(s.delay, s.saveDebounced,
		scheduler.WithClock(s.clock),
		scheduler.WithLogger(s.logger.Named("opex_saver")),
	)
	return s
}

// Taxonomy returns the category tree of the matrix
func (s *MatrixService) Taxonomy() opex.Taxonomy {
	return s.taxonomy
}

// Matrix loads the working grid of year: stored entries, payroll of active
// employees and every edit still waiting to be saved.
func (s *MatrixService) Matrix(ctx context.Context, tenantID uuid.UUID, year int) (*opex.Matrix, error) {
	if err := (opex.Key{Year: year, Month: 1}).Validate(); err != nil {
		return nil, err
	}
	// snapshot before reading the store so a save finishing in between is
	// seen by one of the two reads
	pending := s.saver.Pending()
	entries, err := s.entryRepo.FindByYear(ctx, tenantID, year)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	m := opex.NewMatrix(year, s.taxonomy, entries, employees)
	for ref, amount := range pending {
		if ref.TenantID != tenantID || ref.Year != year {
			continue
		}
		// pending values passed validation when they were armed
		_ = m.Set(ref.Category, ref.Subcategory, ref.Month, amount)
	}
	return m, nil
}

// View computes the full grid of year with every total
func (s *MatrixService) View(ctx context.Context, tenantID uuid.UUID, year int) (*opex.View, error) {
	m, err := s.Matrix(ctx, tenantID, year)
	if err != nil {
		return nil, err
	}
	v := m.View()
	return &v, nil
}

// EditCell validates one manual cell and schedules its save. Editing the
// same cell again before the save runs replaces the pending value.
func (s *MatrixService) EditCell(_ context.Context, tenantID uuid.UUID, req CellEditRequest) (*CellEditResponse, error) {
	key := req.key()
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if req.Amount.IsNegative() {
		return nil, opex.ErrNegativeAmount
	}
	if err := s.taxonomy.ValidateEditable(key.Category, key.Subcategory); err != nil {
		return nil, err
	}
	if err := s.saver.Arm(cellRef{TenantID: tenantID, Key: key}, req.Amount); err != nil {
		return nil, ErrSaverStopped
	}
	return &CellEditResponse{Key: key, Amount: req.Amount, SavesInMs: s.delay.Milliseconds()}, nil
}

// SaveAll writes every non-zero manual cell of the working grid, one upsert
// per cell. Failures are counted, not rolled back.
func (s *MatrixService) SaveAll(ctx context.Context, tenantID uuid.UUID, year int) (*SaveResult, error) {
	m, err := s.Matrix(ctx, tenantID, year)
	if err != nil {
		return nil, err
	}

	result := &SaveResult{Year: year}
	for _, cell := range m.ManualCells() {
		if err := s.upsert(ctx, tenantID, cell.Key, cell.Amount); err != nil {
			result.Failed++
			logger.L(ctx).Warn("OPEX cell save failed",
				zap.Int("month", cell.Month),
				zap.String("category", cell.Category),
				zap.String("subcategory", cell.Subcategory),
				zap.Error(err),
			)
			continue
		}
		result.Succeeded++
	}
	result.Success = result.Failed == 0
	s.metrics.RecordOpexBulkSave(ctx, result.Failed)
	return result, nil
}

// Flush writes every pending edit now and returns how many were written
func (s *MatrixService) Flush() int {
	return s.saver.Flush()
}

// Close flushes pending edits and rejects new ones
func (s *MatrixService) Close() int {
	return s.saver.Stop()
}

func (s *MatrixService) saveDebounced(ref cellRef, amount decimal.Decimal) {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	if err := s.upsert(ctx, ref.TenantID, ref.Key, amount); err != nil {
		s.logger.Error("Debounced OPEX save failed",
			zap.String("tenant_id", ref.TenantID.String()),
			zap.Int("year", ref.Year),
			zap.Int("month", ref.Month),
			zap.String("category", ref.Category),
			zap.String("subcategory", ref.Subcategory),
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("OPEX cell saved",
		zap.String("tenant_id", ref.TenantID.String()),
		zap.Int("year", ref.Year),
		zap.Int("month", ref.Month),
		zap.String("subcategory", ref.Subcategory),
	)
}

func (s *MatrixService) upsert(ctx context.Context, tenantID uuid.UUID, key opex.Key, amount decimal.Decimal) error {
	entry, err := opex.NewEntry(tenantID, key, amount)
	if err == nil {
		err = s.entryRepo.Upsert(ctx, entry)
	}
	s.metrics.RecordOpexWrite(ctx, key.Category, err)
	return err
}
