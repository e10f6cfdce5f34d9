package repositories

import (
	"college-portal/app/server/models"
	"context"
	"errors"
	"fmt"
	"gorm.io/gorm"
)

type GormAccounts struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) *GormAccounts {
	return &GormAccounts{db: db}
}

func (r *GormAccounts) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account %s: %w", username, err)
	}

	return &account, nil
}

func (r *GormAccounts) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find account %d: %w", id, err)
	}

	return &account, nil
}

// Create 保存新账户，通过 SetPassword 设置的明文由 models.Account 的钩子转成 hash
func (r *GormAccounts) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *GormAccounts) UpdatePassword(ctx context.Context, id uint, password string) error {
	account, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 通过 Save 触发钩子，不会写入明文
	account.SetPassword(password)
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

func (r *GormAccounts) DeleteByUsername(ctx context.Context, username string) error {
	if err := r.db.WithContext(ctx).Where("username = ?", username).Delete(&models.Account{}).Error; err != nil {
		return fmt.Errorf("delete account %s: %w", username, err)
	}

	return nil
}

func (r *GormAccounts) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Account{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}

	return count, nil
}
