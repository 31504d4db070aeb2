package repository

import (
	"context"

	"trasporto-backend/internal/model"

	"gorm.io/gorm"
)

// AccessRequestRepository defines data access for registration requests.
// Requests are append-only apart from their status transition.
type AccessRequestRepository interface {
	Create(ctx context.Context, req *model.AccessRequest) error
	GetPendingByID(ctx context.Context, id string) (*model.AccessRequest, error)
	List(ctx context.Context, status string) ([]model.AccessRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type accessRequestRepository struct {
	db *gorm.DB
}

func NewAccessRequestRepository(db *gorm.DB) AccessRequestRepository {
	return &accessRequestRepository{db: db}
}

func (r *accessRequestRepository) Create(ctx context.Context, req *model.AccessRequest) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *accessRequestRepository) GetPendingByID(ctx context.Context, id string) (*model.AccessRequest, error) {
	var req model.AccessRequest
	if err := GetDB(ctx, r.db).First(&req, "id = ? AND status = ?", id, model.RequestPending).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *accessRequestRepository) List(ctx context.Context, status string) ([]model.AccessRequest, error) {
	var reqs []model.AccessRequest
	q := GetDB(ctx, r.db).Order("requested_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *accessRequestRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return GetDB(ctx, r.db).Model(&model.AccessRequest{}).Where("id = ?", id).Update("status", status).Error
}

func (r *accessRequestRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.AccessRequest{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}
