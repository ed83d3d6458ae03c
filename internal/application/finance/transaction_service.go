package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/isletme/backend/internal/domain/finance"
	"github.com/isletme/backend/internal/domain/shared"
)

// TransactionService records income and expense movements and keeps the
// linked bank account balance in step: income adds, expense subtracts.
type TransactionService struct {
	txRepo      finance.TransactionRepository
	accountRepo finance.BankAccountRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(txRepo finance.TransactionRepository, accountRepo finance.BankAccountRepository) *TransactionService {
	return &TransactionService{txRepo: txRepo, accountRepo: accountRepo}
}

// Create records a transaction and posts it to its bank account. An empty
// currency takes the account's currency.
func (s *TransactionService) Create(ctx context.Context, tenantID uuid.UUID, req TransactionRequest) (*TransactionResponse, error) {
	account, err := s.targetAccount(ctx, tenantID, req.BankAccountID)
	if err != nil {
		return nil, err
	}
	tx, err := finance.NewTransaction(tenantID, req.input(account))
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		tx.SetCreatedBy(*req.CreatedBy)
	}

	var changes []finance.BalanceChange
	if account != nil {
		if err := account.Accepts(tx); err != nil {
			return nil, err
		}
		changes = append(changes, account.Posting(tx))
	}
	if err := s.txRepo.CreateWithAccounts(ctx, tx, changes...); err != nil {
		return nil, err
	}
	response := ToTransactionResponse(tx)
	return &response, nil
}

// GetByID retrieves a transaction by ID
func (s *TransactionService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(tx)
	return &response, nil
}

// List lists transactions, newest first by default
func (s *TransactionService) List(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	domainFilter := filter.Filter(map[string]string{
		"type":            filter.Type,
		"category":        filter.Category,
		"bank_account_id": filter.BankAccountID,
	})
	if filter.OrderBy == "" {
		domainFilter.OrderBy = "transaction_date"
	}

	txs, err := s.txRepo.FindAll(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txRepo.Count(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTransactionResponses(txs), total, nil
}

// ListByAccount lists the movements of one bank account
func (s *TransactionService) ListByAccount(ctx context.Context, tenantID, accountID uuid.UUID) ([]TransactionResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, tenantID, accountID); err != nil {
		return nil, err
	}
	txs, err := s.txRepo.FindByBankAccount(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	return ToTransactionResponses(txs), nil
}

// Update replaces a transaction. The old amount is reversed on the old
// account and the new amount posted to the new one.
func (s *TransactionService) Update(ctx context.Context, tenantID, id uuid.UUID, req TransactionRequest) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	var changes []finance.BalanceChange
	oldAccount, err := s.previousAccount(ctx, tenantID, tx.BankAccountID)
	if err != nil {
		return nil, err
	}
	if oldAccount != nil {
		changes = append(changes, oldAccount.Reversal(tx))
	}

	newAccount := oldAccount
	if newAccount == nil || !sameAccount(tx.BankAccountID, req.BankAccountID) {
		if newAccount, err = s.targetAccount(ctx, tenantID, req.BankAccountID); err != nil {
			return nil, err
		}
	}
	if err := tx.Update(req.input(newAccount)); err != nil {
		return nil, err
	}
	if newAccount != nil {
		if err := newAccount.Accepts(tx); err != nil {
			return nil, err
		}
		changes = append(changes, newAccount.Posting(tx))
	}

	if err := s.txRepo.UpdateWithAccounts(ctx, tx, mergeChanges(changes)...); err != nil {
		return nil, err
	}
	response := ToTransactionResponse(tx)
	return &response, nil
}

// Delete removes a transaction and reverses it on its bank account
func (s *TransactionService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tx, err := s.txRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	account, err := s.previousAccount(ctx, tenantID, tx.BankAccountID)
	if err != nil {
		return err
	}
	var changes []finance.BalanceChange
	if account != nil {
		changes = append(changes, account.Reversal(tx))
	}
	return s.txRepo.DeleteWithAccounts(ctx, tx, changes...)
}

// targetAccount loads the account a transaction is being booked to. A nil
// id means no account.
func (s *TransactionService) targetAccount(ctx context.Context, tenantID uuid.UUID, id *uuid.UUID) (*finance.BankAccount, error) {
	if id == nil {
		return nil, nil
	}
	account, err := s.accountRepo.FindByID(ctx, tenantID, *id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewFieldError("bank_account_id", "Banka hesabı bulunamadı")
	}
	return account, err
}

// previousAccount loads the account a stored transaction was booked to.
// An account deleted since then is skipped.
func (s *TransactionService) previousAccount(ctx context.Context, tenantID uuid.UUID, id *uuid.UUID) (*finance.BankAccount, error) {
	if id == nil {
		return nil, nil
	}
	account, err := s.accountRepo.FindByID(ctx, tenantID, *id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return account, err
}

func sameAccount(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// mergeChanges sums changes per account, keeping first-seen order
func mergeChanges(changes []finance.BalanceChange) []finance.BalanceChange {
	out := make([]finance.BalanceChange, 0, len(changes))
	for _, c := range changes {
		merged := false
		for i := range out {
			if out[i].AccountID == c.AccountID {
				out[i].Amount = out[i].Amount.Add(c.Amount)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, c)
		}
	}
	return out
}
