package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID        string `gorm:"primaryKey;type:varchar(32)" json:"id"`
	FirstName string `gorm:"size:64;not null" json:"firstName"`
	LastName  string `gorm:"size:64;not null" json:"lastName"`
	// 仅在未删除客户间唯一，由 service 校验
	Email     string `gorm:"size:191;not null;index" json:"email"`
	Phone     string `gorm:"size:32" json:"phone"`
	Address   string `gorm:"size:255" json:"address,omitempty"`
	CreatedBy string `gorm:"type:varchar(32)" json:"createdBy,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string { return "customers" }

func (c *Customer) FullName() string { return c.FirstName + " " + c.LastName }

func (c *Customer) Validate() error {
	switch {
	case c.FirstName == "":
		return Validation("first name is required")
	case c.LastName == "":
		return Validation("last name is required")
	case c.Email == "":
		return Validation("email is required")
	case !validEmail(c.Email):
		return Validation("invalid email %q", c.Email)
	}
	return nil
}

type CustomerFilter struct {
	Q      string // 名、姓或邮箱子串
	Offset int
	Limit  int
}

type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	List(ctx context.Context, f CustomerFilter) ([]Customer, int64, error)
	All(ctx context.Context) ([]Customer, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id string) error
}
