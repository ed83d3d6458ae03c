package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/isletme/backend/internal/domain/finance"
	"github.com/isletme/backend/internal/domain/shared"
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newAccount(t *testing.T, tenantID uuid.UUID, balance int64) *finance.BankAccount {
	t.Helper()
	a, err := finance.NewBankAccount(tenantID, finance.BankAccountInput{
		BankName: "Ziraat Bankası", AccountName: "Vadesiz TL", Balance: decimal.NewFromInt(balance), IsActive: true,
	})
	require.NoError(t, err)
	return a
}

func newTx(t *testing.T, tenantID uuid.UUID, accountID *uuid.UUID, typ string, amount int64) *finance.Transaction {
	t.Helper()
	tx, err := finance.NewTransaction(tenantID, finance.TransactionInput{
		BankAccountID: accountID, Type: typ, Amount: decimal.NewFromInt(amount), TransactionDate: testDate,
	})
	require.NoError(t, err)
	return tx
}

func changesMatch(want ...finance.BalanceChange) any {
	return mock.MatchedBy(func(got []finance.BalanceChange) bool {
		if len(got) != len(want) {
			return false
		}
		for i := range got {
			if got[i].AccountID != want[i].AccountID || !got[i].Amount.Equal(want[i].Amount) {
				return false
			}
		}
		return true
	})
}

func change(accountID uuid.UUID, amount int64) finance.BalanceChange {
	return finance.BalanceChange{AccountID: accountID, Amount: decimal.NewFromInt(amount)}
}

func TestBankAccountService_Create_DefaultsActive(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockBankAccountRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*finance.BankAccount")).Return(nil)

	resp, err := NewBankAccountService(repo).Create(ctx, tenantID, BankAccountRequest{
		BankName: "Akbank", AccountName: "Ana Hesap", IBAN: "TR33 0006 1005 1978 6457 8413 26",
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Equal(t, "TRY", resp.Currency)
	assert.Equal(t, "TR330006100519786457841326", resp.IBAN)
}

func TestBankAccountService_List_ActiveFilter(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockBankAccountRepository)

	repo.On("FindAll", ctx, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["is_active"] == true && f.OrderBy == "bank_name"
	})).Return([]finance.BankAccount{*newAccount(t, tenantID, 10)}, nil)
	repo.On("Count", ctx, tenantID, mock.Anything).Return(int64(1), nil)

	items, total, err := NewBankAccountService(repo).List(ctx, tenantID, BankAccountListFilter{IsActive: "true"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, items, 1)
}

func TestTransactionService_Create_PostsToAccount(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	accounts := new(MockBankAccountRepository)
	txs := new(MockTransactionRepository)
	svc := NewTransactionService(txs, accounts)

	account := newAccount(t, tenantID, 1000)
	accounts.On("FindByID", ctx, tenantID, account.ID).Return(account, nil)
	txs.On("CreateWithAccounts", ctx, mock.AnythingOfType("*finance.Transaction"), changesMatch(change(account.ID, -400))).Return(nil)

	resp, err := svc.Create(ctx, tenantID, TransactionRequest{
		BankAccountID: &account.ID, Type: "expense", Amount: decimal.NewFromInt(400), TransactionDate: testDate,
	})
	require.NoError(t, err)
	assert.True(t, resp.SignedAmount.Equal(decimal.NewFromInt(-400)))
	txs.AssertExpectations(t)
}

func TestTransactionService_Create_WithoutAccount(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	accounts := new(MockBankAccountRepository)
	txs := new(MockTransactionRepository)
	txs.On("CreateWithAccounts", ctx, mock.Anything, changesMatch()).Return(nil)

	_, err := NewTransactionService(txs, accounts).Create(ctx, tenantID, TransactionRequest{
		Type: "income", Amount: decimal.NewFromInt(5), TransactionDate: testDate,
	})
	require.NoError(t, err)
	accounts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_Create_UnknownAccount(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	missing := uuid.New()
	accounts := new(MockBankAccountRepository)
	txs := new(MockTransactionRepository)
	accounts.On("FindByID", ctx, tenantID, missing).Return(nil, shared.ErrNotFound)

	_, err := NewTransactionService(txs, accounts).Create(ctx, tenantID, TransactionRequest{
		BankAccountID: &missing, Type: "income", Amount: decimal.NewFromInt(5), TransactionDate: testDate,
	})
	de, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "bank_account_id", de.Field)
	txs.AssertNotCalled(t, "CreateWithAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_Create_Currency(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("rejects a currency other than the account's", func(t *testing.T) {
		accounts := new(MockBankAccountRepository)
		txs := new(MockTransactionRepository)
		account := newAccount(t, tenantID, 1000)
		accounts.On("FindByID", ctx, tenantID, account.ID).Return(account, nil)

		_, err := NewTransactionService(txs, accounts).Create(ctx, tenantID, TransactionRequest{
			BankAccountID: &account.ID, Type: "income", Amount: decimal.NewFromInt(100), Currency: "EUR", TransactionDate: testDate,
		})
		require.Error(t, err)
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "currency", de.Field)
		txs.AssertNotCalled(t, "CreateWithAccounts", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty currency takes the account's", func(t *testing.T) {
		accounts := new(MockBankAccountRepository)
		txs := new(MockTransactionRepository)
		account, err := finance.NewBankAccount(tenantID, finance.BankAccountInput{
			BankName: "Garanti", AccountName: "Döviz", Currency: "USD", IsActive: true,
		})
		require.NoError(t, err)
		accounts.On("FindByID", ctx, tenantID, account.ID).Return(account, nil)
		txs.On("CreateWithAccounts", ctx, mock.Anything, changesMatch(change(account.ID, 50))).Return(nil)

		resp, err := NewTransactionService(txs, accounts).Create(ctx, tenantID, TransactionRequest{
			BankAccountID: &account.ID, Type: "income", Amount: decimal.NewFromInt(50), TransactionDate: testDate,
		})
		require.NoError(t, err)
		assert.Equal(t, "USD", resp.Currency)
	})
}

func TestTransactionService_Update_SameAccount(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	accounts := new(MockBankAccountRepository)
	txs := new(MockTransactionRepository)

	account := newAccount(t, tenantID, 1250)
	tx := newTx(t, tenantID, &account.ID, "income", 250)
	txs.On("FindByID", ctx, tenantID, tx.ID).Return(tx, nil)
	accounts.On("FindByID", ctx, tenantID, account.ID).Return(account, nil).Once()
	// -250 reversal and -100 posting collapse into one change
	txs.On("UpdateWithAccounts", ctx, tx, changesMatch(change(account.ID, -350))).Return(nil)

	_, err := NewTransactionService(txs, accounts).Update(ctx, tenantID, tx.ID, TransactionRequest{
		BankAccountID: &account.ID, Type: "expense", Amount: decimal.NewFromInt(100), TransactionDate: testDate,
	})
	require.NoError(t, err)
	accounts.AssertExpectations(t)
	txs.AssertExpectations(t)
}

func TestTransactionService_Update_MovesBetweenAccounts(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	accounts := new(MockBankAccountRepository)
	txs := new(MockTransactionRepository)

	from := newAccount(t, tenantID, 500)
	to := newAccount(t, tenantID, 0)
	tx := newTx(t, tenantID, &from.ID, "income", 200)
	txs.On("FindByID", ctx, tenantID, tx.ID).Return(tx, nil)
	accounts.On("FindByID", ctx, tenantID, from.ID).Return(from, nil)
	accounts.On("FindByID", ctx, tenantID, to.ID).Return(to, nil)
	txs.On("UpdateWithAccounts", ctx, tx, changesMatch(change(from.ID, -200), change(to.ID, 200))).Return(nil)

	_, err := NewTransactionService(txs, accounts).Update(ctx, tenantID, tx.ID, TransactionRequest{
		BankAccountID: &to.ID, Type: "income", Amount: decimal.NewFromInt(200), TransactionDate: testDate,
	})
	require.NoError(t, err)
	txs.AssertExpectations(t)
}

func TestTransactionService_Update_CurrencyMismatch(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	accounts := new(MockBankAccountRepository)
	txs := new(MockTransactionRepository)

	account := newAccount(t, tenantID, 1000)
	tx := newTx(t, tenantID, &account.ID, "income", 100)
	txs.On("FindByID", ctx, tenantID, tx.ID).Return(tx, nil)
	accounts.On("FindByID", ctx, tenantID, account.ID).Return(account, nil)

	_, err := NewTransactionService(txs, accounts).Update(ctx, tenantID, tx.ID, TransactionRequest{
		BankAccountID: &account.ID, Type: "income", Amount: decimal.NewFromInt(100), Currency: "GBP", TransactionDate: testDate,
	})
	de, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "currency", de.Field)
	txs.AssertNotCalled(t, "UpdateWithAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionService_Delete_Reverses(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	accounts := new(MockBankAccountRepository)
	txs := new(MockTransactionRepository)

	account := newAccount(t, tenantID, 600)
	tx := newTx(t, tenantID, &account.ID, "expense", 400)
	txs.On("FindByID", ctx, tenantID, tx.ID).Return(tx, nil)
	accounts.On("FindByID", ctx, tenantID, account.ID).Return(account, nil)
	txs.On("DeleteWithAccounts", ctx, tx, changesMatch(change(account.ID, 400))).Return(nil)

	require.NoError(t, NewTransactionService(txs, accounts).Delete(ctx, tenantID, tx.ID))
	txs.AssertExpectations(t)
}

func TestTransactionService_Delete_AccountGone(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	gone := uuid.New()
	accounts := new(MockBankAccountRepository)
	txs := new(MockTransactionRepository)

	tx := newTx(t, tenantID, &gone, "income", 10)
	txs.On("FindByID", ctx, tenantID, tx.ID).Return(tx, nil)
	accounts.On("FindByID", ctx, tenantID, gone).Return(nil, shared.ErrNotFound)
	txs.On("DeleteWithAccounts", ctx, tx, changesMatch()).Return(nil)

	require.NoError(t, NewTransactionService(txs, accounts).Delete(ctx, tenantID, tx.ID))
}

func TestLoanService_Summary(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockLoanRepository)
	repo.On("FindAllOrdered", ctx, tenantID).Return([]finance.Loan{
		{Principal: decimal.NewFromInt(100), RemainingBalance: decimal.NewFromInt(60), MonthlyPayment: decimal.NewFromInt(10), Status: finance.LoanStatusActive},
		{Principal: decimal.NewFromInt(900), RemainingBalance: decimal.Zero, MonthlyPayment: decimal.NewFromInt(90), Status: finance.LoanStatusClosed},
	}, nil)

	s, err := NewLoanService(repo).Summary(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.ActiveCount)
	assert.Equal(t, "60", s.RemainingBalance.String())
}

func TestLoanService_Create_DerivesInstallment(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockLoanRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*finance.Loan")).Return(nil)

	resp, err := NewLoanService(repo).Create(ctx, tenantID, LoanRequest{
		BankName: "Garanti BBVA", Principal: decimal.NewFromInt(12000), TermMonths: 12, StartDate: testDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", resp.MonthlyPayment.String())
	assert.Equal(t, "12000", resp.RemainingBalance.String())
	assert.Equal(t, "Aktif", resp.StatusDisplay)
}

func TestCheckService_Upcoming(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	ist, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)

	repo := new(MockCheckRepository)
	svc := NewCheckService(repo, ist)
	// 22:30 UTC is already the next day in Istanbul
	svc.now = func() time.Time { return time.Date(2025, 3, 9, 22, 30, 0, 0, time.UTC) }

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, ist)
	to := time.Date(2025, 3, 18, 0, 0, 0, 0, ist)
	repo.On("FindDueBetween", ctx, tenantID, from, to).Return([]finance.Check{}, nil)

	got, err := svc.Upcoming(ctx, tenantID, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	repo.AssertExpectations(t)
}

func TestCheckService_List_DefaultsToDueDate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	repo := new(MockCheckRepository)

	repo.On("FindAll", ctx, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.OrderBy == "due_date" && f.OrderDir == "asc" && f.Filters["status"] == "pending"
	})).Return([]finance.Check{}, nil)
	repo.On("Count", ctx, tenantID, mock.Anything).Return(int64(0), nil)

	_, total, err := NewCheckService(repo, nil).List(ctx, tenantID, CheckListFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDueWindow(t *testing.T) {
	from, to := DueWindow(time.Date(2025, 12, 28, 15, 0, 0, 0, time.UTC), 7)
	assert.Equal(t, time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), to)
}
