package repository

import (
	"context"

	"trasporto-backend/internal/model"

	"gorm.io/gorm"
)

// TransportRepository defines data access for transport occurrences.
type TransportRepository interface {
	Create(ctx context.Context, transport *model.Transport) error
	GetByID(ctx context.Context, id string) (*model.Transport, error)
	List(ctx context.Context) ([]model.Transport, error)
	ListRange(ctx context.Context, from, to string) ([]model.Transport, error)
	Update(ctx context.Context, transport *model.Transport) error
	Delete(ctx context.Context, id string) error
}

type transportRepository struct {
	db *gorm.DB
}

func NewTransportRepository(db *gorm.DB) TransportRepository {
	return &transportRepository{db: db}
}

func (r *transportRepository) Create(ctx context.Context, transport *model.Transport) error {
	return GetDB(ctx, r.db).Create(transport).Error
}

func (r *transportRepository) GetByID(ctx context.Context, id string) (*model.Transport, error) {
	var transport model.Transport
	if err := GetDB(ctx, r.db).First(&transport, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transport, nil
}

// List returns all occurrences, newest first. Date and start time are
// zero-padded strings, so the string sort is chronological.
func (r *transportRepository) List(ctx context.Context) ([]model.Transport, error) {
	var transports []model.Transport
	if err := GetDB(ctx, r.db).Order("date DESC, start_time DESC").Find(&transports).Error; err != nil {
		return nil, err
	}
	return transports, nil
}

// ListRange returns occurrences within the inclusive [from, to] date range.
// Either bound may be empty to leave that side open.
func (r *transportRepository) ListRange(ctx context.Context, from, to string) ([]model.Transport, error) {
	q := GetDB(ctx, r.db).Order("date ASC, start_time ASC")
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	var transports []model.Transport
	if err := q.Find(&transports).Error; err != nil {
		return nil, err
	}
	return transports, nil
}

func (r *transportRepository) Update(ctx context.Context, transport *model.Transport) error {
	return GetDB(ctx, r.db).Save(transport).Error
}

func (r *transportRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Transport{}).Error
}
