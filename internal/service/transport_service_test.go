package service

import (
	"context"
	"testing"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(f fixtures) TransportInput {
	return TransportInput{
		Date:          "2024-06-03",
		StartTime:     "09:00",
		EndTime:       "11:30",
		UserID:        f.person.ID.String(),
		DriverID:      f.driver.ID.String(),
		DestinationID: f.destination.ID.String(),
	}
}

func countTransports(t *testing.T, svc TransportService) int {
	t.Helper()
	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	return len(rows)
}

func TestTransportCreateSingle(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	created, err := svc.Create(context.Background(), validInput(f), uuid.NewString())
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "2024-06-03", created[0].Date)
	assert.Equal(t, "09:00", created[0].StartTime)
	assert.NotEqual(t, uuid.Nil, created[0].ID)
}

func TestTransportCreateNormalizesTimes(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	in := validInput(f)
	in.StartTime = "9:30"
	in.EndTime = "8:05"

	created, err := svc.Create(context.Background(), in, uuid.NewString())
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "09:30", created[0].StartTime)
	assert.Equal(t, "08:05", created[0].EndTime)
}

func TestTransportCreateInvalidTimeRejected(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	for _, bad := range []string{"25:00", "12:60", "9:5", "abc"} {
		in := validInput(f)
		in.StartTime = bad
		_, err := svc.Create(context.Background(), in, uuid.NewString())
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "start time %q", bad)
	}
	assert.Equal(t, 0, countTransports(t, svc))
}

func TestTransportCreateUnknownReferenceRejected(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	in := validInput(f)
	in.DriverID = uuid.NewString()
	_, err := svc.Create(context.Background(), in, uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, 0, countTransports(t, svc))
}

func TestTransportCreateWeeklyExpansion(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	in := validInput(f)
	in.Date = "2024-01-01"
	in.IsRecurring = true
	in.RecurringType = model.RecurringWeekly
	in.RecurringEndDate = "2024-01-22"

	created, err := svc.Create(context.Background(), in, uuid.NewString())
	require.NoError(t, err)
	require.Len(t, created, 4)

	var gotDates []string
	for _, row := range created {
		gotDates = append(gotDates, row.Date)
		assert.True(t, row.IsRecurring)
		assert.Equal(t, model.RecurringWeekly, row.RecurringType)
		assert.Equal(t, "2024-01-22", row.RecurringEndDate)
	}
	assert.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"}, gotDates)
	assert.Equal(t, 4, countTransports(t, svc))
}

func TestTransportCreateMonthlyExpansionClampsFebruary(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	in := validInput(f)
	in.Date = "2024-01-31"
	in.IsRecurring = true
	in.RecurringType = model.RecurringMonthly
	in.RecurringEndDate = "2024-03-31"

	created, err := svc.Create(context.Background(), in, uuid.NewString())
	require.NoError(t, err)
	require.Len(t, created, 3)
	assert.Equal(t, "2024-01-31", created[0].Date)
	assert.Equal(t, "2024-02-29", created[1].Date)
	assert.Equal(t, "2024-03-31", created[2].Date)
}

func TestTransportCreateRecurringMissingFields(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	in := validInput(f)
	in.IsRecurring = true
	_, err := svc.Create(context.Background(), in, uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestTransportCreateRecurringEndBeforeStart(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	in := validInput(f)
	in.Date = "2024-06-03"
	in.IsRecurring = true
	in.RecurringType = model.RecurringDaily
	in.RecurringEndDate = "2024-06-01"

	_, err := svc.Create(context.Background(), in, uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, 0, countTransports(t, svc))
}

func TestTransportBatchWritesAuditEntry(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	in := validInput(f)
	in.Date = "2024-01-01"
	in.IsRecurring = true
	in.RecurringType = model.RecurringDaily
	in.RecurringEndDate = "2024-01-03"

	_, err := svc.Create(context.Background(), in, uuid.NewString())
	require.NoError(t, err)

	var logs []model.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCreateTransportBatch, logs[0].Action)
	assert.Contains(t, logs[0].Details, `"occurrences":3`)
}

func TestTransportSingleCreateNoAuditEntry(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	_, err := svc.Create(context.Background(), validInput(f), uuid.NewString())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.AuditLog{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestTransportUpdateKeepsIdentity(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	created, err := svc.Create(context.Background(), validInput(f), uuid.NewString())
	require.NoError(t, err)
	original := created[0]

	in := validInput(f)
	in.Date = "2024-06-10"
	in.Notes = "rescheduled"

	updated, err := svc.Update(context.Background(), original.ID.String(), in)
	require.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, "2024-06-10", updated.Date)
	assert.Equal(t, "rescheduled", updated.Notes)
	assert.Equal(t, 1, countTransports(t, svc))
}

func TestTransportUpdateLeavesSiblingsAlone(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	in := validInput(f)
	in.Date = "2024-01-01"
	in.IsRecurring = true
	in.RecurringType = model.RecurringDaily
	in.RecurringEndDate = "2024-01-03"

	created, err := svc.Create(context.Background(), in, uuid.NewString())
	require.NoError(t, err)
	require.Len(t, created, 3)

	edit := validInput(f)
	edit.Date = "2024-02-01"
	_, err = svc.Update(context.Background(), created[1].ID.String(), edit)
	require.NoError(t, err)

	first, err := svc.GetByID(context.Background(), created[0].ID.String())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", first.Date)
	last, err := svc.GetByID(context.Background(), created[2].ID.String())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", last.Date)
}

func TestTransportDelete(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	created, err := svc.Create(context.Background(), validInput(f), uuid.NewString())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created[0].ID.String()))
	assert.Equal(t, 0, countTransports(t, svc))

	err = svc.Delete(context.Background(), created[0].ID.String())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestTransportGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	svc := newTransportServiceForTest(t, db)

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
