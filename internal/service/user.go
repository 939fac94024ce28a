package service

import (
	"context"

	"jewellery-backoffice/internal/domain"
)

// UserService 管理端用户操作
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, q string, offset, limit int) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, q, offset, limit)
}

// Active 账号存在且未被封禁；鉴权中间件每个请求调用
func (s *UserService) Active(ctx context.Context, uid string) (bool, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return false, err
	}
	return u != nil && u.IsActive, nil
}

// Ban 停用账号：不能再登录，已签发的 token 经 RequireActive 立即失效
func (s *UserService) Ban(ctx context.Context, id string) error {
	if id == "" {
		return domain.Validation("missing id")
	}
	ok, err := s.users.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("user")
	}
	return nil
}
