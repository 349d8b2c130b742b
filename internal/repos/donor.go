package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/gangamma-trust/registration-portal/internal/logger"
	"github.com/gangamma-trust/registration-portal/internal/types"
)

type DonorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, donor *types.Donor) error
	GetByMobile(ctx context.Context, tx *gorm.DB, mobile string) (*types.Donor, error)
	MobileExists(ctx context.Context, tx *gorm.DB, mobile string) (bool, error)
}

type donorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDonorRepo(db *gorm.DB, baseLog *logger.Logger) DonorRepo {
	repoLog := baseLog.With("repo", "DonorRepo")
	return &donorRepo{db: db, log: repoLog}
}

func (dr *donorRepo) Create(ctx context.Context, tx *gorm.DB, donor *types.Donor) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	return transaction.WithContext(ctx).Create(donor).Error
}

func (dr *donorRepo) GetByMobile(ctx context.Context, tx *gorm.DB, mobile string) (*types.Donor, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result types.Donor
	if err := transaction.WithContext(ctx).
		Where("mobile = ?", mobile).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *donorRepo) MobileExists(ctx context.Context, tx *gorm.DB, mobile string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Donor{}).
		Where("mobile = ?", mobile).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
