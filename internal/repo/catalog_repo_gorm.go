package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jewellery-backoffice/internal/domain"
)

type CatalogRepo struct{ db *gorm.DB }

func NewCatalogRepo(db *gorm.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) Create(ctx context.Context, it *domain.CatalogItem) error {
	if err := r.db.WithContext(ctx).Create(it).Error; err != nil {
		return domain.Persistence("create catalog item", err)
	}
	return nil
}

func (r *CatalogRepo) FindByID(ctx context.Context, id string) (*domain.CatalogItem, error) {
	var it domain.CatalogItem
	err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.Persistence("find catalog item", err)
	}
	return &it, nil
}

func (r *CatalogRepo) List(ctx context.Context, f domain.CatalogFilter) ([]domain.CatalogItem, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.CatalogItem{})
	q = contains(q, f.Q, "name", "material")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.LowStockBelow > 0 {
		q = q.Where("stock < ?", f.LowStockBelow)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, domain.Persistence("count catalog items", err)
	}
	items := []domain.CatalogItem{}
	if err := page(q.Order("created_at DESC, id DESC"), f.Offset, f.Limit).Find(&items).Error; err != nil {
		return nil, 0, domain.Persistence("list catalog items", err)
	}
	return items, total, nil
}

func (r *CatalogRepo) ListInventory(ctx context.Context, f domain.InventoryFilter) ([]domain.CatalogItem, error) {
	q := r.db.WithContext(ctx).Model(&domain.CatalogItem{})
	q = contains(q, f.Q, "name", "category")
	if f.LowStockBelow > 0 {
		q = q.Where("stock < ?", f.LowStockBelow)
	}
	items := []domain.CatalogItem{}
	if err := q.Order("name ASC, id ASC").Find(&items).Error; err != nil {
		return nil, domain.Persistence("list inventory", err)
	}
	return items, nil
}

func (r *CatalogRepo) Recent(ctx context.Context, n int) ([]domain.CatalogItem, error) {
	items := []domain.CatalogItem{}
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(n).Find(&items).Error
	if err != nil {
		return nil, domain.Persistence("recent catalog items", err)
	}
	return items, nil
}

func (r *CatalogRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.CatalogItem{}).Count(&n).Error; err != nil {
		return 0, domain.Persistence("count catalog items", err)
	}
	return n, nil
}

// Update 全字段覆盖（合并在 service 完成），零值也会写入
func (r *CatalogRepo) Update(ctx context.Context, it *domain.CatalogItem) error {
	err := r.db.WithContext(ctx).Model(&domain.CatalogItem{}).
		Where("id = ?", it.ID).
		Select("name", "category", "material", "price", "stock", "image_ref", "description", "updated_at").
		Updates(it).Error
	if err != nil {
		return domain.Persistence("update catalog item", err)
	}
	return nil
}

// Delete 软删；不存在也不报错
func (r *CatalogRepo) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.CatalogItem{}).Error; err != nil {
		return domain.Persistence("delete catalog item", err)
	}
	return nil
}

func (r *CatalogRepo) AdjustStock(ctx context.Context, id string, qty int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.CatalogItem{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, domain.Persistence("adjust stock", res.Error)
	}
	return res.RowsAffected > 0, nil
}
