package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"jewellery-backoffice/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if isDupKey(err) {
		return domain.Duplicate("email already registered")
	}
	if err != nil {
		return domain.Persistence("create user", err)
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Persistence("find user", err)
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Persistence("find user", err)
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context, q string, offset, limit int) ([]domain.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.User{})
	tx = contains(tx, q, "email", "first_name", "last_name")
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, domain.Persistence("count users", err)
	}
	users := []domain.User{}
	if err := page(tx.Order("created_at desc"), offset, limit).Find(&users).Error; err != nil {
		return nil, 0, domain.Persistence("list users", err)
	}
	return users, total, nil
}

func (r *UserRepo) TouchLogin(ctx context.Context, id string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
	if err != nil {
		return domain.Persistence("update last login", err)
	}
	return nil
}

// Deactivate 封禁：is_active=false
func (r *UserRepo) Deactivate(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return false, domain.Persistence("deactivate user", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func isDupKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 驱动未开启 TranslateError 时按错误文本兜底
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
