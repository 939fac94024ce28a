package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jewellery-backoffice/internal/core/auth"
	"jewellery-backoffice/internal/domain"
)

func newAuth(t *testing.T) (*AuthService, *UserService, *auth.JWTer) {
	s := newStore(t)
	j := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	return NewAuthService(s.Users(), j), NewUserService(s.Users()), j
}

var staff = RegisterInput{
	FirstName: "Sam",
	LastName:  "Clerk",
	Email:     "Sam@Shop.test",
	Password:  "secret1",
	Role:      domain.RoleStaff,
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, j := newAuth(t)

	u, err := svc.Register(ctx, staff)
	require.NoError(t, err)
	assert.Equal(t, "sam@shop.test", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, u.IsActive)

	res, err := svc.Login(ctx, "SAM@shop.test", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.True(t, res.ExpiresAt.After(time.Now()))
	require.NotNil(t, res.User.LastLoginAt)

	claims, err := j.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UID)
	assert.Equal(t, string(domain.RoleStaff), claims.Role)

	me, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sam Clerk", me.Name())
	assert.NotNil(t, me.LastLoginAt)

	_, err = svc.Me(ctx, "ghost")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRegister_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuth(t)
	_, err := svc.Register(ctx, staff)
	require.NoError(t, err)

	dup := staff
	dup.Email = "sam@shop.test"
	_, err = svc.Register(ctx, dup)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	short := staff
	short.Email, short.Password = "x@shop.test", "12345"
	_, err = svc.Register(ctx, short)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	badRole := staff
	badRole.Email, badRole.Role = "y@shop.test", "owner"
	_, err = svc.Register(ctx, badRole)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	missing := staff
	missing.Email, missing.FirstName = "z@shop.test", ""
	_, err = svc.Register(ctx, missing)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAuth(t)
	u, err := svc.Register(ctx, staff)
	require.NoError(t, err)

	_, err = svc.Login(ctx, staff.Email, "wrong-pass")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Login(ctx, "nobody@shop.test", "secret1")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	// 封禁后不能登录
	require.NoError(t, users.Ban(ctx, u.ID))
	_, err = svc.Login(ctx, staff.Email, staff.Password)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newAuth(t)
	_, err := svc.Register(ctx, staff)
	require.NoError(t, err)
	mgr := staff
	mgr.FirstName, mgr.Email, mgr.Role = "Mia", "mia@shop.test", domain.RoleManager
	_, err = svc.Register(ctx, mgr)
	require.NoError(t, err)

	list, total, err := users.List(ctx, "", 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 2)

	list, _, err = users.List(ctx, "MIA", 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.RoleManager, list[0].Role)

	assert.True(t, errors.Is(users.Ban(ctx, ""), domain.ErrValidation))
	assert.True(t, errors.Is(users.Ban(ctx, "ghost"), domain.ErrNotFound))
}
