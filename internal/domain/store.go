package domain

import "context"

// Repos 绑定到同一连接或事务的仓储集合
type Repos interface {
	Catalog() CatalogRepository
	Customers() CustomerRepository
	Orders() OrderRepository
	Users() UserRepository
}

// Store 提供仓储；InTx 内 fn 返回错误则整体回滚
type Store interface {
	Repos
	InTx(ctx context.Context, fn func(tx Repos) error) error
}
