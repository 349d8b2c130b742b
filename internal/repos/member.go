package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/gangamma-trust/registration-portal/internal/logger"
	"github.com/gangamma-trust/registration-portal/internal/types"
)

type MemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, member *types.Member) error
	GetByMobile(ctx context.Context, tx *gorm.DB, mobile string) (*types.Member, error)
	MobileExists(ctx context.Context, tx *gorm.DB, mobile string) (bool, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	repoLog := baseLog.With("repo", "MemberRepo")
	return &memberRepo{db: db, log: repoLog}
}

func (mr *memberRepo) Create(ctx context.Context, tx *gorm.DB, member *types.Member) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	return transaction.WithContext(ctx).Create(member).Error
}

func (mr *memberRepo) GetByMobile(ctx context.Context, tx *gorm.DB, mobile string) (*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var result types.Member
	if err := transaction.WithContext(ctx).
		Where("mobile = ?", mobile).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (mr *memberRepo) MobileExists(ctx context.Context, tx *gorm.DB, mobile string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Member{}).
		Where("mobile = ?", mobile).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
