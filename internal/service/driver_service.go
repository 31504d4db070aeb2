package service

import (
	"context"
	"errors"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"gorm.io/gorm"
)

type DriverInput struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber"`
	Notes         string `json:"notes"`
}

// DriverService is plain CRUD over drivers.
type DriverService interface {
	Create(ctx context.Context, in DriverInput) (*model.Driver, error)
	List(ctx context.Context) ([]model.Driver, error)
	Update(ctx context.Context, id string, in DriverInput) (*model.Driver, error)
	Delete(ctx context.Context, id string) error
}

type driverService struct {
	repo repository.DriverRepository
}

func NewDriverService(repo repository.DriverRepository) DriverService {
	return &driverService{repo: repo}
}

func (s *driverService) Create(ctx context.Context, in DriverInput) (*model.Driver, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	driver := &model.Driver{
		Name:          in.Name,
		Phone:         in.Phone,
		LicenseNumber: in.LicenseNumber,
		Notes:         in.Notes,
	}
	if err := s.repo.Create(ctx, driver); err != nil {
		return nil, apperr.Internal(err)
	}
	return driver, nil
}

func (s *driverService) List(ctx context.Context) ([]model.Driver, error) {
	drivers, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return drivers, nil
}

func (s *driverService) Update(ctx context.Context, id string, in DriverInput) (*model.Driver, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	driver, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("driver not found")
		}
		return nil, apperr.Internal(err)
	}
	driver.Name = in.Name
	driver.Phone = in.Phone
	driver.LicenseNumber = in.LicenseNumber
	driver.Notes = in.Notes
	if err := s.repo.Update(ctx, driver); err != nil {
		return nil, apperr.Internal(err)
	}
	return driver, nil
}

func (s *driverService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("driver not found")
		}
		return apperr.Internal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
