package repository

import (
	"context"

	"trasporto-backend/internal/model"

	"gorm.io/gorm"
)

// PersonRepository defines data access for ride recipients.
type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	GetByID(ctx context.Context, id string) (*model.Person, error)
	List(ctx context.Context) ([]model.Person, error)
	Update(ctx context.Context, person *model.Person) error
	Delete(ctx context.Context, id string) error
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db: db}
}

func (r *personRepository) Create(ctx context.Context, person *model.Person) error {
	return GetDB(ctx, r.db).Create(person).Error
}

func (r *personRepository) GetByID(ctx context.Context, id string) (*model.Person, error) {
	var person model.Person
	if err := GetDB(ctx, r.db).First(&person, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) List(ctx context.Context) ([]model.Person, error) {
	var persons []model.Person
	if err := GetDB(ctx, r.db).Order("created_at DESC").Find(&persons).Error; err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *personRepository) Update(ctx context.Context, person *model.Person) error {
	return GetDB(ctx, r.db).Save(person).Error
}

// Delete removes the person and every transport referencing them in one
// transaction. The cascade lives here so it behaves identically on the
// sqlite test driver, where foreign-key enforcement is off by default.
func (r *personRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.Transport{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Person{}).Error
	})
}
