package service

import (
	"context"
	"testing"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAccessRequestServiceForTest(t *testing.T, db *gorm.DB) AccessRequestService {
	t.Helper()
	return NewAccessRequestService(
		repository.NewAccessRequestRepository(db),
		repository.NewAccountRepository(db),
		repository.NewAuditLogRepository(db),
		repository.NewTransactionManager(db),
	)
}

func seedPendingRequest(t *testing.T, db *gorm.DB, username string) *model.AccessRequest {
	t.Helper()
	request := &model.AccessRequest{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "Test " + username,
		PasswordHash: "$2a$10$fakedhashfortestingonlyabcdefghijklmnopqrstuv",
		Status:       model.RequestPending,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func TestApproveCreatesApprovedAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAccessRequestServiceForTest(t, db)
	request := seedPendingRequest(t, db, "giulia")
	admin := seedApprovedAccount(t, db, "boss", "admin123")

	account, err := svc.Approve(context.Background(), request.ID.String(), admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "giulia", account.Username)
	assert.Equal(t, model.RoleUser, account.Role)
	assert.True(t, account.IsApproved)

	var stored model.Account
	require.NoError(t, db.First(&stored, "username = ?", "giulia").Error)
	assert.Equal(t, request.PasswordHash, stored.PasswordHash)

	var updated model.AccessRequest
	require.NoError(t, db.First(&updated, "id = ?", request.ID).Error)
	assert.Equal(t, model.RequestApproved, updated.Status)
}

func TestApproveWritesAuditEntry(t *testing.T) {
	db := newTestDB(t)
	svc := newAccessRequestServiceForTest(t, db)
	request := seedPendingRequest(t, db, "giulia")
	admin := seedApprovedAccount(t, db, "boss", "admin123")

	_, err := svc.Approve(context.Background(), request.ID.String(), admin.ID.String())
	require.NoError(t, err)

	var entry model.AuditLog
	require.NoError(t, db.First(&entry, "action = ?", model.ActionApproveAccessRequest).Error)
	require.NotNil(t, entry.AccountID)
	assert.Equal(t, admin.ID, *entry.AccountID)
	assert.Equal(t, request.ID.String(), entry.EntityID)
}

func TestApproveTwiceFails(t *testing.T) {
	db := newTestDB(t)
	svc := newAccessRequestServiceForTest(t, db)
	request := seedPendingRequest(t, db, "giulia")
	admin := seedApprovedAccount(t, db, "boss", "admin123")

	_, err := svc.Approve(context.Background(), request.ID.String(), admin.ID.String())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), request.ID.String(), admin.ID.String())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	var count int64
	require.NoError(t, db.Model(&model.Account{}).Where("username = ?", "giulia").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRejectFlipsStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newAccessRequestServiceForTest(t, db)
	request := seedPendingRequest(t, db, "giulia")
	admin := seedApprovedAccount(t, db, "boss", "admin123")

	require.NoError(t, svc.Reject(context.Background(), request.ID.String(), admin.ID.String()))

	var updated model.AccessRequest
	require.NoError(t, db.First(&updated, "id = ?", request.ID).Error)
	assert.Equal(t, model.RequestRejected, updated.Status)

	// no account materializes from a rejection
	var count int64
	require.NoError(t, db.Model(&model.Account{}).Where("username = ?", "giulia").Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestApproveAfterRejectFails(t *testing.T) {
	db := newTestDB(t)
	svc := newAccessRequestServiceForTest(t, db)
	request := seedPendingRequest(t, db, "giulia")
	admin := seedApprovedAccount(t, db, "boss", "admin123")

	require.NoError(t, svc.Reject(context.Background(), request.ID.String(), admin.ID.String()))

	_, err := svc.Approve(context.Background(), request.ID.String(), admin.ID.String())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestApproveUnknownRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newAccessRequestServiceForTest(t, db)
	admin := seedApprovedAccount(t, db, "boss", "admin123")

	_, err := svc.Approve(context.Background(), uuid.NewString(), admin.ID.String())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newAccessRequestServiceForTest(t, db)
	admin := seedApprovedAccount(t, db, "boss", "admin123")

	first := seedPendingRequest(t, db, "giulia")
	seedPendingRequest(t, db, "marco")
	require.NoError(t, svc.Reject(context.Background(), first.ID.String(), admin.ID.String()))

	pending, err := svc.List(context.Background(), model.RequestPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "marco", pending[0].Username)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newAccessRequestServiceForTest(t, db)

	_, err := svc.List(context.Background(), "archived")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
