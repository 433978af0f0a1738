package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-dashboard-admin/internal/domain"
)

type AccountRepo struct{ db *gorm.DB }

func NewAccountRepo(db *gorm.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) FindByUserName(ctx context.Context, userName string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.WithContext(ctx).First(&a, "user_name = ?", userName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) List(ctx context.Context, q domain.AccountQuery) ([]domain.Account, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Account{})
	if s := strings.TrimSpace(q.UserName); s != "" {
		tx = tx.Where("user_name LIKE ?", "%"+s+"%")
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []domain.Account
	offset := (q.Page - 1) * q.PageSize
	if err := tx.Order("created_at DESC").Limit(q.PageSize).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) (int64, error) {
	res := r.db.WithContext(ctx).Create(a)
	if res.Error != nil {
		if isDupKey(res.Error) {
			return 0, domain.ErrConflict
		}
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *AccountRepo) Update(ctx context.Context, a *domain.Account) (int64, error) {
	res := r.db.WithContext(ctx).Save(a)
	if res.Error != nil {
		// 改名撞唯一索引也算冲突
		if isDupKey(res.Error) {
			return 0, domain.ErrConflict
		}
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *AccountRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&domain.Account{})
	return res.RowsAffected, res.Error
}

// isDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异
func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
