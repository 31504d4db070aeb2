package repository

import (
	"context"
	"errors"
	"testing"

	"trasporto-backend/internal/database"
	"trasporto-backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

type refs struct {
	person      model.Person
	driver      model.Driver
	destination model.Destination
}

func seedRefs(t *testing.T, db *gorm.DB) refs {
	t.Helper()
	r := refs{
		person: model.Person{Name: "Maria Rossi"},
		driver: model.Driver{Name: "Paolo Bianchi"},
		destination: model.Destination{
			Name:    "Centro Diurno",
			Address: "Via Roma 1",
			Cost:    decimal.NewFromFloat(8.00),
		},
	}
	require.NoError(t, db.Create(&r.person).Error)
	require.NoError(t, db.Create(&r.driver).Error)
	require.NoError(t, db.Create(&r.destination).Error)
	return r
}

func seedTransportRow(t *testing.T, db *gorm.DB, r refs, date, startTime string) model.Transport {
	t.Helper()
	row := model.Transport{
		Date:          date,
		StartTime:     startTime,
		UserID:        r.person.ID,
		DriverID:      r.driver.ID,
		DestinationID: r.destination.ID,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func transportCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.Transport{}).Count(&count).Error)
	return count
}

func TestPersonDeleteCascadesToTransports(t *testing.T) {
	db := newTestDB(t)
	r := seedRefs(t, db)
	seedTransportRow(t, db, r, "2024-06-03", "09:00")
	seedTransportRow(t, db, r, "2024-06-04", "09:00")

	other := seedRefs(t, db)
	kept := seedTransportRow(t, db, other, "2024-06-05", "09:00")

	repo := NewPersonRepository(db)
	require.NoError(t, repo.Delete(context.Background(), r.person.ID.String()))

	assert.EqualValues(t, 1, transportCount(t, db))
	var remaining model.Transport
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, kept.ID, remaining.ID)

	_, err := repo.GetByID(context.Background(), r.person.ID.String())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDriverDeleteCascadesToTransports(t *testing.T) {
	db := newTestDB(t)
	r := seedRefs(t, db)
	seedTransportRow(t, db, r, "2024-06-03", "09:00")

	repo := NewDriverRepository(db)
	require.NoError(t, repo.Delete(context.Background(), r.driver.ID.String()))
	assert.EqualValues(t, 0, transportCount(t, db))
}

func TestDestinationDeleteCascadesToTransports(t *testing.T) {
	db := newTestDB(t)
	r := seedRefs(t, db)
	seedTransportRow(t, db, r, "2024-06-03", "09:00")

	repo := NewDestinationRepository(db)
	require.NoError(t, repo.Delete(context.Background(), r.destination.ID.String()))
	assert.EqualValues(t, 0, transportCount(t, db))
}

func TestTransportListOrdering(t *testing.T) {
	db := newTestDB(t)
	r := seedRefs(t, db)
	seedTransportRow(t, db, r, "2024-06-03", "09:00")
	seedTransportRow(t, db, r, "2024-06-10", "08:00")
	seedTransportRow(t, db, r, "2024-06-10", "14:00")

	repo := NewTransportRepository(db)
	rows, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-06-10", rows[0].Date)
	assert.Equal(t, "14:00", rows[0].StartTime)
	assert.Equal(t, "08:00", rows[1].StartTime)
	assert.Equal(t, "2024-06-03", rows[2].Date)
}

func TestTransportListRangeInclusive(t *testing.T) {
	db := newTestDB(t)
	r := seedRefs(t, db)
	seedTransportRow(t, db, r, "2024-05-31", "09:00")
	seedTransportRow(t, db, r, "2024-06-01", "09:00")
	seedTransportRow(t, db, r, "2024-06-30", "09:00")
	seedTransportRow(t, db, r, "2024-07-01", "09:00")

	repo := NewTransportRepository(db)
	rows, err := repo.ListRange(context.Background(), "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-06-01", rows[0].Date)
	assert.Equal(t, "2024-06-30", rows[1].Date)
}

func TestTransactionRollbackLeavesNoRows(t *testing.T) {
	db := newTestDB(t)
	r := seedRefs(t, db)

	txm := NewTransactionManager(db)
	repo := NewTransportRepository(db)

	boom := errors.New("boom")
	err := txm.RunInTx(context.Background(), func(txCtx context.Context) error {
		row := model.Transport{
			Date:          "2024-06-03",
			StartTime:     "09:00",
			UserID:        r.person.ID,
			DriverID:      r.driver.ID,
			DestinationID: r.destination.ID,
		}
		if err := repo.Create(txCtx, &row); err != nil {
			return err
		}
		return boom
	})
	assert.True(t, errors.Is(err, boom))
	assert.EqualValues(t, 0, transportCount(t, db))
}

func TestAuditListPaginatesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewAuditLogRepository(db)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(context.Background(), &model.AuditLog{
			Action:   model.ActionDeleteAccount,
			EntityID: "entity",
		}))
	}

	logs, total, err := repo.List(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, logs, 2)

	logs, _, err = repo.List(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
