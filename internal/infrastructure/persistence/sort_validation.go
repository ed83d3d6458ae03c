package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC, defaulting to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, otherwise defaultField.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed != "" && allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// sortFields builds a whitelist that always includes the base entity columns
func sortFields(columns ...string) map[string]bool {
	m := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, c := range columns {
		m[c] = true
	}
	return m
}

var (
	CustomerSortFields       = sortFields("name", "company", "city", "status", "tax_number")
	BankAccountSortFields    = sortFields("bank_name", "account_name", "currency", "balance")
	TransactionSortFields    = sortFields("transaction_date", "amount", "type", "category")
	LoanSortFields           = sortFields("bank_name", "principal", "remaining_balance", "start_date", "status")
	CheckSortFields          = sortFields("check_number", "due_date", "issue_date", "amount", "status")
	ProposalSortFields       = sortFields("proposal_number", "issue_date", "valid_until", "total", "status")
	ServiceRequestSortFields = sortFields("ticket_number", "priority", "status", "scheduled_at")
	TaskSortFields           = sortFields("title", "priority", "status", "due_date")
	EmployeeSortFields       = sortFields("first_name", "last_name", "department", "hire_date", "gross_salary")
)
