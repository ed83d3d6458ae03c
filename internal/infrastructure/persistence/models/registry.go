package models

// All lists every model in dependency order for gorm AutoMigrate
func All() []any {
	return []any{
		&UserModel{},
		&CustomerModel{},
		&BankAccountModel{},
		&TransactionModel{},
		&LoanModel{},
		&CheckModel{},
		&EmployeeModel{},
		&ProposalModel{},
		&ProposalItemModel{},
		&ServiceRequestModel{},
		&TaskModel{},
		&OpexEntryModel{},
		&PDFSchemaModel{},
	}
}
