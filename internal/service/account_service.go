package service

import (
	"context"
	"encoding/json"
	"errors"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AccountService covers the admin-only account management operations:
// listing approved accounts, role changes and deletion. Self-targeting
// role changes and deletes are always rejected, including for the sole
// remaining admin.
type AccountService interface {
	ListApproved(ctx context.Context) ([]AccountResponse, error)
	UpdateRole(ctx context.Context, targetID, newRole, actingAccountID string) (*AccountResponse, error)
	Delete(ctx context.Context, targetID, actingAccountID string) error
}

type accountService struct {
	accounts repository.AccountRepository
	audits   repository.AuditLogRepository
}

func NewAccountService(accounts repository.AccountRepository, audits repository.AuditLogRepository) AccountService {
	return &accountService{accounts: accounts, audits: audits}
}

func (s *accountService) ListApproved(ctx context.Context) ([]AccountResponse, error) {
	accounts, err := s.accounts.ListApproved(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	res := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		res = append(res, mapAccountToResponse(&accounts[i]))
	}
	return res, nil
}

func (s *accountService) UpdateRole(ctx context.Context, targetID, newRole, actingAccountID string) (*AccountResponse, error) {
	if newRole != model.RoleAdmin && newRole != model.RoleUser {
		return nil, apperr.Validation("invalid role")
	}
	if targetID == actingAccountID {
		return nil, apperr.Validation("cannot modify your own role")
	}

	account, err := s.accounts.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, apperr.Internal(err)
	}

	previous := account.Role
	account.Role = newRole
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit(ctx, actingAccountID, model.ActionUpdateAccountRole, account.ID.String(), account.Username,
		map[string]string{"from": previous, "to": newRole})

	resp := mapAccountToResponse(account)
	return &resp, nil
}

func (s *accountService) Delete(ctx context.Context, targetID, actingAccountID string) error {
	if targetID == actingAccountID {
		return apperr.Validation("cannot delete your own account")
	}

	account, err := s.accounts.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("account not found")
		}
		return apperr.Internal(err)
	}

	if err := s.accounts.Delete(ctx, targetID); err != nil {
		return apperr.Internal(err)
	}

	s.audit(ctx, actingAccountID, model.ActionDeleteAccount, targetID, account.Username, nil)
	return nil
}

// audit records the action without failing the mutation: the role change or
// delete has already been applied.
func (s *accountService) audit(ctx context.Context, actingAccountID, action, entityID, entityName string, extra map[string]string) {
	var actorID *uuid.UUID
	if parsed, err := uuid.Parse(actingAccountID); err == nil {
		actorID = &parsed
	}
	details, _ := json.Marshal(extra)
	_ = s.audits.Create(ctx, &model.AuditLog{
		AccountID:  actorID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	})
}
