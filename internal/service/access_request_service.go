package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessRequestResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	Status      string `json:"status"`
	RequestedAt string `json:"requestedAt"`
}

// AccessRequestService manages the pending-registration queue. Approve and
// Reject are admin decisions recorded in the audit log.
type AccessRequestService interface {
	List(ctx context.Context, status string) ([]AccessRequestResponse, error)
	Approve(ctx context.Context, requestID, actingAccountID string) (*AccountResponse, error)
	Reject(ctx context.Context, requestID, actingAccountID string) error
}

type accessRequestService struct {
	requests repository.AccessRequestRepository
	accounts repository.AccountRepository
	audits   repository.AuditLogRepository
	txm      repository.TransactionManager
}

func NewAccessRequestService(
	requests repository.AccessRequestRepository,
	accounts repository.AccountRepository,
	audits repository.AuditLogRepository,
	txm repository.TransactionManager,
) AccessRequestService {
	return &accessRequestService{
		requests: requests,
		accounts: accounts,
		audits:   audits,
		txm:      txm,
	}
}

func mapRequestToResponse(r *model.AccessRequest) AccessRequestResponse {
	return AccessRequestResponse{
		ID:          r.ID.String(),
		Username:    r.Username,
		Email:       r.Email,
		FullName:    r.FullName,
		Status:      r.Status,
		RequestedAt: r.RequestedAt.Format(time.RFC3339),
	}
}

func (s *accessRequestService) List(ctx context.Context, status string) ([]AccessRequestResponse, error) {
	if status != "" && status != model.RequestPending && status != model.RequestApproved && status != model.RequestRejected {
		return nil, apperr.Validation("invalid status filter")
	}
	reqs, err := s.requests.List(ctx, status)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	res := make([]AccessRequestResponse, 0, len(reqs))
	for i := range reqs {
		res = append(res, mapRequestToResponse(&reqs[i]))
	}
	return res, nil
}

// Approve promotes a pending request into an approved user account. The
// account insert and the status flip happen in one transaction, so a partial
// approval is never observable.
func (s *accessRequestService) Approve(ctx context.Context, requestID, actingAccountID string) (*AccountResponse, error) {
	var account *model.Account

	err := s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		request, err := s.requests.GetPendingByID(txCtx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("request not found or already processed")
			}
			return apperr.Internal(err)
		}

		account = &model.Account{
			Username:     request.Username,
			Email:        request.Email,
			FullName:     request.FullName,
			PasswordHash: request.PasswordHash,
			Role:         model.RoleUser,
			IsApproved:   true,
		}
		if err := s.accounts.Create(txCtx, account); err != nil {
			return apperr.Internal(err)
		}
		if err := s.requests.UpdateStatus(txCtx, requestID, model.RequestApproved); err != nil {
			return apperr.Internal(err)
		}

		return s.writeAudit(txCtx, actingAccountID, model.ActionApproveAccessRequest, requestID, request.Username)
	})
	if err != nil {
		return nil, err
	}

	resp := mapAccountToResponse(account)
	return &resp, nil
}

// Reject transitions a pending request to rejected. Re-rejecting a request
// that is no longer pending is an error, symmetric with Approve.
func (s *accessRequestService) Reject(ctx context.Context, requestID, actingAccountID string) error {
	return s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		request, err := s.requests.GetPendingByID(txCtx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("request not found or already processed")
			}
			return apperr.Internal(err)
		}

		if err := s.requests.UpdateStatus(txCtx, requestID, model.RequestRejected); err != nil {
			return apperr.Internal(err)
		}

		return s.writeAudit(txCtx, actingAccountID, model.ActionRejectAccessRequest, requestID, request.Username)
	})
}

func (s *accessRequestService) writeAudit(ctx context.Context, actingAccountID, action, entityID, entityName string) error {
	var actorID *uuid.UUID
	if parsed, err := uuid.Parse(actingAccountID); err == nil {
		actorID = &parsed
	}
	details, _ := json.Marshal(map[string]string{"requestId": entityID})
	entry := &model.AuditLog{
		AccountID:  actorID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	}
	if err := s.audits.Create(ctx, entry); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
