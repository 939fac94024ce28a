package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"jewellery-backoffice/internal/domain"
)

// Models 需要迁移的全部表（按依赖顺序）
func Models() []any {
	return []any{
		&domain.User{},
		&domain.CatalogItem{},
		&domain.Customer{},
		&domain.Order{},
		&domain.OrderLineItem{},
	}
}

func AutoMigrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }

type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Catalog() domain.CatalogRepository    { return &CatalogRepo{db: s.db} }
func (s *Store) Customers() domain.CustomerRepository { return &CustomerRepo{db: s.db} }
func (s *Store) Orders() domain.OrderRepository       { return &OrderRepo{db: s.db} }
func (s *Store) Users() domain.UserRepository         { return &UserRepo{db: s.db} }

// InTx 单事务执行；fn 返回错误即回滚
func (s *Store) InTx(ctx context.Context, fn func(tx domain.Repos) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
	if err != nil && domain.KindOf(err) == 0 {
		return domain.Persistence("transaction failed", err)
	}
	return err
}

// LIKE 转义符用 '!'，三种库写法一致
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// contains 任一列包含 term：% 与 _ 按字面匹配，两侧都在 SQL 里 LOWER
func contains(q *gorm.DB, term string, cols ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return q
	}
	pat := "%" + likeEscaper.Replace(term) + "%"
	conds := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		conds[i] = "LOWER(" + col + ") LIKE LOWER(?) ESCAPE '!'"
		args[i] = pat
	}
	return q.Where(strings.Join(conds, " OR "), args...)
}

func page(q *gorm.DB, offset, limit int) *gorm.DB {
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}
