package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/isletme/backend/internal/application/finance"
	"github.com/isletme/backend/internal/domain/finance"
)

// BankAccountHandler serves /finance/bank-accounts
type BankAccountHandler struct {
	*crudHandler[financeapp.BankAccountRequest, financeapp.BankAccountResponse, financeapp.BankAccountListFilter]
}

// NewBankAccountHandler creates a new BankAccountHandler
func NewBankAccountHandler(svc crudService[financeapp.BankAccountRequest, financeapp.BankAccountResponse, financeapp.BankAccountListFilter]) *BankAccountHandler {
	crud := newCRUDHandler(svc)
	crud.prepare = func(c *gin.Context, req *financeapp.BankAccountRequest) {
		req.CreatedBy = createdBy(c)
	}
	return &BankAccountHandler{crudHandler: crud}
}

// TransactionService is the transaction use case surface
type TransactionService interface {
	crudService[financeapp.TransactionRequest, financeapp.TransactionResponse, financeapp.TransactionListFilter]
	ListByAccount(ctx context.Context, tenantID, accountID uuid.UUID) ([]financeapp.TransactionResponse, error)
}

// TransactionHandler serves /finance/transactions
type TransactionHandler struct {
	*crudHandler[financeapp.TransactionRequest, financeapp.TransactionResponse, financeapp.TransactionListFilter]
	txService TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(txService TransactionService) *TransactionHandler {
	crud := newCRUDHandler[financeapp.TransactionRequest, financeapp.TransactionResponse, financeapp.TransactionListFilter](txService)
	crud.prepare = func(c *gin.Context, req *financeapp.TransactionRequest) {
		req.CreatedBy = createdBy(c)
	}
	return &TransactionHandler{crudHandler: crud, txService: txService}
}

// ListByAccount returns every transaction that moved money on an account
func (h *TransactionHandler) ListByAccount(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	accountID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.txService.ListByAccount(c.Request.Context(), tenantID, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// LoanService is the loan use case surface
type LoanService interface {
	crudService[financeapp.LoanRequest, financeapp.LoanResponse, financeapp.LoanListFilter]
	Summary(ctx context.Context, tenantID uuid.UUID) (finance.LoanSummary, error)
}

// LoanHandler serves /finance/loans
type LoanHandler struct {
	*crudHandler[financeapp.LoanRequest, financeapp.LoanResponse, financeapp.LoanListFilter]
	loanService LoanService
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService LoanService) *LoanHandler {
	crud := newCRUDHandler[financeapp.LoanRequest, financeapp.LoanResponse, financeapp.LoanListFilter](loanService)
	crud.prepare = func(c *gin.Context, req *financeapp.LoanRequest) {
		req.CreatedBy = createdBy(c)
	}
	return &LoanHandler{crudHandler: crud, loanService: loanService}
}

// Summary returns the debt totals over all loans
func (h *LoanHandler) Summary(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	summary, err := h.loanService.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// CheckService is the check use case surface
type CheckService interface {
	crudService[financeapp.CheckRequest, financeapp.CheckResponse, financeapp.CheckListFilter]
	Upcoming(ctx context.Context, tenantID uuid.UUID, days int) ([]financeapp.CheckResponse, error)
}

// CheckHandler serves /finance/checks
type CheckHandler struct {
	*crudHandler[financeapp.CheckRequest, financeapp.CheckResponse, financeapp.CheckListFilter]
	checkService CheckService
}

// NewCheckHandler creates a new CheckHandler
func NewCheckHandler(checkService CheckService) *CheckHandler {
	crud := newCRUDHandler[financeapp.CheckRequest, financeapp.CheckResponse, financeapp.CheckListFilter](checkService)
	crud.prepare = func(c *gin.Context, req *financeapp.CheckRequest) {
		req.CreatedBy = createdBy(c)
	}
	return &CheckHandler{crudHandler: crud, checkService: checkService}
}

// Upcoming returns pending checks due within ?days= days
func (h *CheckHandler) Upcoming(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	days, ok := h.intQuery(c, "days", financeapp.DefaultUpcomingDays)
	if !ok {
		return
	}

	checks, err := h.checkService.Upcoming(c.Request.Context(), tenantID, days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checks)
}
