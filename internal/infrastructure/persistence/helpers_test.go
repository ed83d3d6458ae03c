package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/isletme/backend/internal/infrastructure/persistence/models"
)

// newTestDB opens an in-memory SQLite database with every table migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second pooled connection would see a different in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.CustomerModel{},
		&models.BankAccountModel{},
		&models.TransactionModel{},
		&models.LoanModel{},
		&models.CheckModel{},
		&models.ProposalModel{},
		&models.ProposalItemModel{},
		&models.ServiceRequestModel{},
		&models.TaskModel{},
		&models.EmployeeModel{},
		&models.UserModel{},
		&models.OpexEntryModel{},
		&models.PDFSchemaModel{},
	))
	return db
}
