package service

import (
	"context"
	"errors"

	"trasporto-backend/internal/apperr"
	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"

	"gorm.io/gorm"
)

type PersonInput struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Province string `json:"province"`
	Notes    string `json:"notes"`
}

// PersonService is plain CRUD over ride recipients.
type PersonService interface {
	Create(ctx context.Context, in PersonInput) (*model.Person, error)
	List(ctx context.Context) ([]model.Person, error)
	Update(ctx context.Context, id string, in PersonInput) (*model.Person, error)
	Delete(ctx context.Context, id string) error
}

type personService struct {
	repo repository.PersonRepository
}

func NewPersonService(repo repository.PersonRepository) PersonService {
	return &personService{repo: repo}
}

func (s *personService) Create(ctx context.Context, in PersonInput) (*model.Person, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	person := &model.Person{
		Name:     in.Name,
		Phone:    in.Phone,
		Address:  in.Address,
		City:     in.City,
		Province: in.Province,
		Notes:    in.Notes,
	}
	if err := s.repo.Create(ctx, person); err != nil {
		return nil, apperr.Internal(err)
	}
	return person, nil
}

func (s *personService) List(ctx context.Context) ([]model.Person, error) {
	persons, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return persons, nil
}

func (s *personService) Update(ctx context.Context, id string, in PersonInput) (*model.Person, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	person, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	person.Name = in.Name
	person.Phone = in.Phone
	person.Address = in.Address
	person.City = in.City
	person.Province = in.Province
	person.Notes = in.Notes
	if err := s.repo.Update(ctx, person); err != nil {
		return nil, apperr.Internal(err)
	}
	return person, nil
}

func (s *personService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
