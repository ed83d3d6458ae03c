package finance

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/isletme/backend/internal/domain/shared"
	"github.com/isletme/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// BankAccount is a company bank account (banka hesabı).
type BankAccount struct {
	shared.TenantEntity
	BankName      string
	Branch        string
	AccountName   string
	AccountNumber string
	IBAN          string
	Currency      valueobject.Currency
	Balance       decimal.Decimal
	IsActive      bool
}

// BankAccountInput holds the editable fields of a bank account form.
type BankAccountInput struct {
	BankName      string
	Branch        string
	AccountName   string
	AccountNumber string
	IBAN          string
	Currency      string
	Balance       decimal.Decimal
	IsActive      bool
}

// NewBankAccount creates a new bank account
func NewBankAccount(tenantID uuid.UUID, in BankAccountInput) (*BankAccount, error) {
	a := &BankAccount{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := a.apply(in); err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces the editable fields.
func (a *BankAccount) Update(in BankAccountInput) error {
	if err := a.apply(in); err != nil {
		return err
	}
	a.Touch()
	return nil
}

func (a *BankAccount) apply(in BankAccountInput) error {
	if strings.TrimSpace(in.BankName) == "" {
		return shared.RequiredField("bank_name")
	}
	if strings.TrimSpace(in.AccountName) == "" {
		return shared.RequiredField("account_name")
	}
	currency, ok := valueobject.ParseCurrency(in.Currency)
	if !ok {
		return shared.NewFieldError("currency", "Geçersiz para birimi")
	}
	iban := NormalizeIBAN(in.IBAN)
	if iban != "" && !ValidIBAN(iban) {
		return shared.NewFieldError("iban", "Geçersiz IBAN")
	}

	a.BankName = strings.TrimSpace(in.BankName)
	a.Branch = strings.TrimSpace(in.Branch)
	a.AccountName = strings.TrimSpace(in.AccountName)
	a.AccountNumber = strings.TrimSpace(in.AccountNumber)
	a.IBAN = iban
	a.Currency = currency
	a.Balance = in.Balance
	a.IsActive = in.IsActive
	return nil
}

// BalanceChange is a signed adjustment to one account's balance. It is
// added to the stored balance, never written over it.
type BalanceChange struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal
}

// Accepts reports whether t can be booked to the account. Amounts are not
// converted, so the currencies must match.
func (a *BankAccount) Accepts(t *Transaction) error {
	if t.Currency != a.Currency {
		return shared.NewFieldError("currency",
			fmt.Sprintf("İşlem para birimi (%s) hesabın para birimiyle (%s) aynı olmalıdır", t.Currency, a.Currency))
	}
	return nil
}

// Posting is the change booking t makes to the account
func (a *BankAccount) Posting(t *Transaction) BalanceChange {
	return BalanceChange{AccountID: a.ID, Amount: t.SignedAmount()}
}

// Reversal undoes a previous posting of t
func (a *BankAccount) Reversal(t *Transaction) BalanceChange {
	return BalanceChange{AccountID: a.ID, Amount: t.SignedAmount().Neg()}
}

// NormalizeIBAN strips spaces and upper-cases an IBAN.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
}

// ValidIBAN checks length and the ISO 13616 mod-97 checksum. Turkish IBANs
// are 26 characters; other countries are accepted within 15..34.
func ValidIBAN(iban string) bool {
	iban = NormalizeIBAN(iban)
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	if strings.HasPrefix(iban, "TR") && len(iban) != 26 {
		return false
	}
	rearranged := iban[4:] + iban[:4]
	rem := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			v := int(r-'A') + 10
			rem = (rem*100 + v) % 97
		default:
			return false
		}
	}
	return rem == 1
}
