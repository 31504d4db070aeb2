package service

import (
	"testing"

	"trasporto-backend/internal/database"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema. One
// connection, so transactions and plain queries share the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

type fixtures struct {
	person      *model.Person
	driver      *model.Driver
	destination *model.Destination
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	f := fixtures{
		person:  &model.Person{Name: "Maria Rossi", City: "Bergamo"},
		driver:  &model.Driver{Name: "Paolo Bianchi"},
		destination: &model.Destination{
			Name:    "Ospedale Papa Giovanni",
			Address: "Piazza OMS 1, Bergamo",
			Cost:    decimal.NewFromFloat(12.50),
		},
	}
	require.NoError(t, db.Create(f.person).Error)
	require.NoError(t, db.Create(f.driver).Error)
	require.NoError(t, db.Create(f.destination).Error)
	return f
}

func newTransportServiceForTest(t *testing.T, db *gorm.DB) TransportService {
	t.Helper()
	return NewTransportService(
		repository.NewTransportRepository(db),
		repository.NewPersonRepository(db),
		repository.NewDriverRepository(db),
		repository.NewDestinationRepository(db),
		repository.NewAuditLogRepository(db),
		repository.NewTransactionManager(db),
	)
}
