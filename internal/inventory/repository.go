package inventory

import (
	"context"

	"github.com/stockpilehq/stockpile/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository handles database operations for catalog rows
type ProductRepository interface {
	// Create inserts a new product
	Create(ctx context.Context, product *domain.Product) error

	// Save rewrites an existing product
	Save(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// GetByName retrieves a product by exact name
	GetByName(ctx context.Context, name string) (*domain.Product, error)

	// List retrieves products matching the optional filters
	List(ctx context.Context, nameFilter, categoryFilter string) ([]domain.Product, error)

	// Delete removes a product, reporting how many rows were removed
	Delete(ctx context.Context, id int64) (int64, error)
}

// HistoryRepository handles database operations for stock audit rows
type HistoryRepository interface {
	// Create inserts a new history entry
	Create(ctx context.Context, entry *domain.InventoryHistory) error

	// GetByProductID retrieves history for one product, newest first
	GetByProductID(ctx context.Context, productID int64) ([]domain.InventoryHistory, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) List(ctx context.Context, nameFilter, categoryFilter string) ([]domain.Product, error) {
	db := r.db.WithContext(ctx).Model(&domain.Product{})
	if nameFilter != "" {
		db = db.Where("name LIKE ?", "%"+nameFilter+"%")
	}
	if categoryFilter != "" {
		db = db.Where("category = ?", categoryFilter)
	}
	products := make([]domain.Product, 0)
	if err := db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	return result.RowsAffected, result.Error
}

// GormHistoryRepository is the GORM implementation of HistoryRepository
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM-based repository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

func (r *GormHistoryRepository) Create(ctx context.Context, entry *domain.InventoryHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormHistoryRepository) GetByProductID(ctx context.Context, productID int64) ([]domain.InventoryHistory, error) {
	entries := make([]domain.InventoryHistory, 0)
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("change_date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
