package service

import (
	"context"
	"strings"
	"time"

	"jewellery-backoffice/internal/core/auth"
	"jewellery-backoffice/internal/domain"
	"jewellery-backoffice/pkg/utils"
)

const minPasswordLen = 6

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

type AuthService struct {
	users domain.UserRepository
	jwt   *auth.JWTer
	now   func() time.Time
}

func NewAuthService(users domain.UserRepository, j *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwt: j, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	u := &domain.User{
		ID:        utils.NewID(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Role:      domain.Role(strings.ToLower(strings.TrimSpace(string(in.Role)))),
		IsActive:  true,
	}
	switch {
	case u.FirstName == "" || u.LastName == "" || u.Email == "" || in.Password == "":
		return nil, domain.Validation("all fields are required")
	case !u.ValidEmail():
		return nil, domain.Validation("invalid email %q", u.Email)
	case len(in.Password) < minPasswordLen:
		return nil, domain.Validation("password must be at least %d characters long", minPasswordLen)
	case !u.Role.Valid():
		return nil, domain.Validation("invalid role %q", in.Role)
	}

	existing, err := s.users.FindByEmail(ctx, u.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("email already registered")
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Persistence("hash password", err)
	}
	u.PasswordHash = hash
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 校验未封禁用户的账号密码并签发 token
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, domain.Unauthorized("invalid credentials")
	}
	tok, exp, err := s.jwt.Issue(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, domain.Persistence("issue token", err)
	}
	now := s.now()
	if err := s.users.TouchLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLoginAt = &now
	return &LoginResult{Token: tok, ExpiresAt: exp, User: u}, nil
}

func (s *AuthService) Me(ctx context.Context, uid string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("user")
	}
	return u, nil
}
