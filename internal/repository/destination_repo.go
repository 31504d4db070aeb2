package repository

import (
	"context"

	"trasporto-backend/internal/model"

	"gorm.io/gorm"
)

// DestinationRepository defines data access for destinations.
type DestinationRepository interface {
	Create(ctx context.Context, destination *model.Destination) error
	GetByID(ctx context.Context, id string) (*model.Destination, error)
	List(ctx context.Context) ([]model.Destination, error)
	Update(ctx context.Context, destination *model.Destination) error
	Delete(ctx context.Context, id string) error
}

type destinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) Create(ctx context.Context, destination *model.Destination) error {
	return GetDB(ctx, r.db).Create(destination).Error
}

func (r *destinationRepository) GetByID(ctx context.Context, id string) (*model.Destination, error) {
	var destination model.Destination
	if err := GetDB(ctx, r.db).First(&destination, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &destination, nil
}

func (r *destinationRepository) List(ctx context.Context) ([]model.Destination, error) {
	var destinations []model.Destination
	if err := GetDB(ctx, r.db).Order("created_at DESC").Find(&destinations).Error; err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *destinationRepository) Update(ctx context.Context, destination *model.Destination) error {
	return GetDB(ctx, r.db).Save(destination).Error
}

// Delete cascades to transports referencing the destination.
func (r *destinationRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("destination_id = ?", id).Delete(&model.Transport{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Destination{}).Error
	})
}
