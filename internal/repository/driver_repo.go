package repository

import (
	"context"

	"trasporto-backend/internal/model"

	"gorm.io/gorm"
)

// DriverRepository defines data access for drivers.
type DriverRepository interface {
	Create(ctx context.Context, driver *model.Driver) error
	GetByID(ctx context.Context, id string) (*model.Driver, error)
	List(ctx context.Context) ([]model.Driver, error)
	Update(ctx context.Context, driver *model.Driver) error
	Delete(ctx context.Context, id string) error
}

type driverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, driver *model.Driver) error {
	return GetDB(ctx, r.db).Create(driver).Error
}

func (r *driverRepository) GetByID(ctx context.Context, id string) (*model.Driver, error) {
	var driver model.Driver
	if err := GetDB(ctx, r.db).First(&driver, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) List(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	if err := GetDB(ctx, r.db).Order("created_at DESC").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *driverRepository) Update(ctx context.Context, driver *model.Driver) error {
	return GetDB(ctx, r.db).Save(driver).Error
}

// Delete cascades to transports referencing the driver, same as PersonRepository.
func (r *driverRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("driver_id = ?", id).Delete(&model.Transport{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Driver{}).Error
	})
}
