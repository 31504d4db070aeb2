package repository

import (
	"context"

	"trasporto-backend/internal/model"

	"gorm.io/gorm"
)

// AccountRepository defines data access for authenticatable accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetApprovedByUsername(ctx context.Context, username string) (*model.Account, error)
	ListApproved(ctx context.Context) ([]model.Account, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, account *model.Account) error
	Delete(ctx context.Context, id string) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return GetDB(ctx, r.db).Create(account).Error
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	if err := GetDB(ctx, r.db).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetApprovedByUsername(ctx context.Context, username string) (*model.Account, error) {
	var account model.Account
	if err := GetDB(ctx, r.db).First(&account, "username = ? AND is_approved = ?", username, true).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ListApproved(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := GetDB(ctx, r.db).Where("is_approved = ?", true).Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Account{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	return GetDB(ctx, r.db).Save(account).Error
}

func (r *accountRepository) Delete(ctx context.Context, id string) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Account{}).Error
}
