package service

import (
	"context"
	"errors"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DestinationInput struct {
	Name    string          `json:"name" binding:"required"`
	Address string          `json:"address" binding:"required"`
	Cost    decimal.Decimal `json:"cost"`
	Notes   string          `json:"notes"`
}

// DestinationService is plain CRUD over destinations. The cost is the
// fixed per-trip reimbursement amount, two decimal places.
type DestinationService interface {
	Create(ctx context.Context, in DestinationInput) (*model.Destination, error)
	List(ctx context.Context) ([]model.Destination, error)
	Update(ctx context.Context, id string, in DestinationInput) (*model.Destination, error)
	Delete(ctx context.Context, id string) error
}

type destinationService struct {
	repo repository.DestinationRepository
}

func NewDestinationService(repo repository.DestinationRepository) DestinationService {
	return &destinationService{repo: repo}
}

func validateDestinationInput(in DestinationInput) error {
	if in.Name == "" {
		return apperr.Validation("name is required")
	}
	if in.Address == "" {
		return apperr.Validation("address is required")
	}
	if in.Cost.IsNegative() {
		return apperr.Validation("cost must not be negative")
	}
	return nil
}

func (s *destinationService) Create(ctx context.Context, in DestinationInput) (*model.Destination, error) {
	if err := validateDestinationInput(in); err != nil {
		return nil, err
	}
	destination := &model.Destination{
		Name:    in.Name,
		Address: in.Address,
		Cost:    in.Cost.Round(2),
		Notes:   in.Notes,
	}
	if err := s.repo.Create(ctx, destination); err != nil {
		return nil, apperr.Internal(err)
	}
	return destination, nil
}

func (s *destinationService) List(ctx context.Context) ([]model.Destination, error) {
	destinations, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return destinations, nil
}

func (s *destinationService) Update(ctx context.Context, id string, in DestinationInput) (*model.Destination, error) {
	if err := validateDestinationInput(in); err != nil {
		return nil, err
	}
	destination, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("destination not found")
		}
		return nil, apperr.Internal(err)
	}
	destination.Name = in.Name
	destination.Address = in.Address
	destination.Cost = in.Cost.Round(2)
	destination.Notes = in.Notes
	if err := s.repo.Update(ctx, destination); err != nil {
		return nil, apperr.Internal(err)
	}
	return destination, nil
}

func (s *destinationService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("destination not found")
		}
		return apperr.Internal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
