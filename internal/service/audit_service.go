package service

import (
	"context"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/repository"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	AccountID  string `json:"accountId"`
	Username   string `json:"username"`
	Action     string `json:"action"`
	EntityID   string `json:"entityId"`
	EntityName string `json:"entityName"`
	Details    string `json:"details"`
	CreatedAt  string `json:"createdAt"`
}

// AuditService exposes the paginated audit trail to admins.
type AuditService interface {
	List(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditLogRepository
}

func NewAuditService(repo repository.AuditLogRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) List(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		username := "system"
		accountID := ""
		if l.Account != nil {
			username = l.Account.Username
		}
		if l.AccountID != nil {
			accountID = l.AccountID.String()
		}
		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			AccountID:  accountID,
			Username:   username,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return res, total, nil
}
