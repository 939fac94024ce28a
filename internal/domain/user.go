package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleManager || r == RoleStaff }

type User struct {
	ID           string     `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	FirstName    string     `gorm:"size:64;not null" json:"firstName"`
	LastName     string     `gorm:"size:64;not null" json:"lastName"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Role         Role       `gorm:"size:16;not null;default:staff" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) Name() string { return u.FirstName + " " + u.LastName }

func (u *User) ValidEmail() bool { return validEmail(u.Email) }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, q string, offset, limit int) ([]User, int64, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
	Deactivate(ctx context.Context, id string) (bool, error)
}
