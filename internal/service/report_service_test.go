package service

import (
	"context"
	"testing"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportServiceForTest(t *testing.T, db *gorm.DB) ReportService {
	t.Helper()
	return NewReportService(
		repository.NewTransportRepository(db),
		repository.NewPersonRepository(db),
		repository.NewDriverRepository(db),
		repository.NewDestinationRepository(db),
	)
}

func seedTransport(t *testing.T, db *gorm.DB, f fixtures, date string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Transport{
		Date:          date,
		StartTime:     "09:00",
		UserID:        f.person.ID,
		DriverID:      f.driver.ID,
		DestinationID: f.destination.ID,
	}).Error)
}

func TestUserReportsGroupAndSum(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newReportServiceForTest(t, db)

	seedTransport(t, db, f, "2024-06-03")
	seedTransport(t, db, f, "2024-06-10")

	reports, err := svc.UserReports(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Maria Rossi", reports[0].UserName)
	assert.Equal(t, 2, reports[0].TripCount)
	assert.True(t, reports[0].TotalCost.Equal(decimal.NewFromFloat(25.00)),
		"got total %s", reports[0].TotalCost)
	require.Len(t, reports[0].Trips, 2)
	assert.Equal(t, "Paolo Bianchi", reports[0].Trips[0].DriverName)
	assert.Equal(t, "Ospedale Papa Giovanni", reports[0].Trips[0].DestinationName)
}

func TestReportsHonorDateRange(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newReportServiceForTest(t, db)

	seedTransport(t, db, f, "2024-05-31")
	seedTransport(t, db, f, "2024-06-03")
	seedTransport(t, db, f, "2024-07-01")

	reports, err := svc.UserReports(context.Background(), "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].TripCount)
}

func TestReportsRejectInvalidRange(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	svc := newReportServiceForTest(t, db)

	_, err := svc.UserReports(context.Background(), "june", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestDriverReportsOmitIdleDrivers(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newReportServiceForTest(t, db)

	idle := &model.Driver{Name: "Franco Neri"}
	require.NoError(t, db.Create(idle).Error)
	seedTransport(t, db, f, "2024-06-03")

	reports, err := svc.DriverReports(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "Paolo Bianchi", reports[0].DriverName)
}

func TestDestinationReports(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newReportServiceForTest(t, db)

	seedTransport(t, db, f, "2024-06-03")
	seedTransport(t, db, f, "2024-06-04")
	seedTransport(t, db, f, "2024-06-05")

	reports, err := svc.DestinationReports(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 3, reports[0].TripCount)
	assert.True(t, reports[0].TotalCost.Equal(decimal.NewFromFloat(37.50)),
		"got total %s", reports[0].TotalCost)
}
