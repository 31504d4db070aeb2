package service

import (
	"context"
	"testing"

	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditListResolvesActorUsername(t *testing.T) {
	db := newTestDB(t)
	admin := seedApprovedAccount(t, db, "boss", "admin123")
	svc := NewAuditService(repository.NewAuditLogRepository(db))

	require.NoError(t, db.Create(&model.AuditLog{
		AccountID: &admin.ID,
		Action:    model.ActionDeleteAccount,
		EntityID:  "someone",
	}).Error)
	require.NoError(t, db.Create(&model.AuditLog{
		Action:   model.ActionDeleteAccount,
		EntityID: "someone-else",
	}).Error)

	logs, total, err := svc.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)

	byEntity := map[string]AuditLogResponse{}
	for _, l := range logs {
		byEntity[l.EntityID] = l
	}
	assert.Equal(t, "boss", byEntity["someone"].Username)
	// entries with no actor fall back to "system"
	assert.Equal(t, "system", byEntity["someone-else"].Username)
}
