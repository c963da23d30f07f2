package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/stockpilehq/stockpile/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TopicStockChanged is published whenever an update changes a product's
// stock quantity. Subscribers run synchronously on the publishing goroutine.
const TopicStockChanged = "inventory.stock.changed"

// StockChanged is the payload published on TopicStockChanged.
type StockChanged struct {
	ProductID   int64
	OldQuantity int
	NewQuantity int
	ChangedAt   time.Time
}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name     string
	Unit     string
	Category string
	Brand    string
	Stock    int
	Image    string
}

// Service implements catalog CRUD with derived stock status and an
// audit trail of quantity changes.
type Service struct {
	products ProductRepository
	history  HistoryRepository
	bus      EventBus.Bus
}

// NewService creates a catalog service. The stock-changed subscriber is
// registered on the bus so audit rows are written whenever an update
// changes a quantity.
func NewService(products ProductRepository, history HistoryRepository, bus EventBus.Bus) *Service {
	s := &Service{products: products, history: history, bus: bus}
	if err := bus.Subscribe(TopicStockChanged, s.recordStockChange); err != nil {
		zap.L().Error("failed to subscribe stock change recorder", zap.Error(err))
	}
	return s
}

// NewGormService wires a Service over GORM repositories.
func NewGormService(db *gorm.DB, bus EventBus.Bus) *Service {
	return NewService(NewGormProductRepository(db), NewGormHistoryRepository(db), bus)
}

func (in *ProductInput) validate() error {
	var fields []FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, FieldError{Field: "name", Message: "Name is required."})
	}
	if in.Stock < 0 {
		fields = append(fields, FieldError{Field: "stock", Message: "Stock must be a non-negative integer."})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create inserts a new product. Names must be unique with a
// case-sensitive exact match; the row's status is derived from stock.
func (s *Service) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing, err := s.products.GetByName(ctx, in.Name)
	switch {
	case err == nil:
		return nil, &ConflictError{Name: in.Name, ExistingID: existing.ID}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.Wrap(err, "query product by name")
	}

	product := &domain.Product{
		Name:     in.Name,
		Unit:     in.Unit,
		Category: in.Category,
		Brand:    in.Brand,
		Stock:    in.Stock,
		Status:   domain.StatusForStock(in.Stock),
		Image:    in.Image,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "insert product")
	}
	return product, nil
}

// Update rewrites all fields of an existing product and recomputes its
// status. A quantity change publishes one stock-changed event. Name
// uniqueness is deliberately not re-checked against other rows; renaming
// onto an existing name surfaces as a storage error from the unique
// index rather than a conflict.
func (s *Service) Update(ctx context.Context, id int64, in ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, errors.Wrap(err, "query product")
	}

	if err := in.validate(); err != nil {
		return nil, err
	}

	oldStock := product.Stock
	product.Name = in.Name
	product.Unit = in.Unit
	product.Category = in.Category
	product.Brand = in.Brand
	product.Stock = in.Stock
	product.Status = domain.StatusForStock(in.Stock)
	product.Image = in.Image

	if err := s.products.Save(ctx, product); err != nil {
		return nil, errors.Wrap(err, "update product")
	}

	if oldStock != product.Stock {
		s.bus.Publish(TopicStockChanged, StockChanged{
			ProductID:   product.ID,
			OldQuantity: oldStock,
			NewQuantity: product.Stock,
			ChangedAt:   time.Now(),
		})
	}
	return product, nil
}

// Delete removes a product. History rows are retained; they reference
// the product by id only.
func (s *Service) Delete(ctx context.Context, id int64) error {
	rows, err := s.products.Delete(ctx, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if rows == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// List returns products matching the optional name substring and exact
// category filters.
func (s *Service) List(ctx context.Context, nameFilter, categoryFilter string) ([]domain.Product, error) {
	products, err := s.products.List(ctx, nameFilter, categoryFilter)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// Get returns a single product by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, errors.Wrap(err, "query product")
	}
	return product, nil
}

// History returns the audit trail of one product, newest change first.
// Zero from/to bounds are unbounded.
func (s *Service) History(ctx context.Context, productID int64, from, to time.Time) ([]domain.InventoryHistory, error) {
	entries, err := s.history.GetByProductID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "query history")
	}
	if from.IsZero() && to.IsZero() {
		return entries, nil
	}
	filtered := entries[:0]
	for _, entry := range entries {
		if !from.IsZero() && entry.ChangeDate.Before(from) {
			continue
		}
		if !to.IsZero() && entry.ChangeDate.After(to) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered, nil
}

// recordStockChange appends one audit row per stock change event.
// Failures are logged and never propagate to the publishing update.
func (s *Service) recordStockChange(evt StockChanged) {
	entry := &domain.InventoryHistory{
		ProductID:   evt.ProductID,
		OldQuantity: evt.OldQuantity,
		NewQuantity: evt.NewQuantity,
		ChangeDate:  evt.ChangedAt,
		UserInfo:    domain.DefaultActor,
	}
	if err := s.history.Create(context.Background(), entry); err != nil {
		zap.L().Error("history tracking error",
			zap.Int64("product_id", evt.ProductID),
			zap.Error(err))
	}
}
