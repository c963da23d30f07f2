package domain

import "time"

// Stock status labels derived from the stock quantity. Status is always
// recomputed on write, never accepted from a client.
const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

// DefaultActor is recorded on history rows when no operator identity exists.
const DefaultActor = "System/Admin"

// Product represents one catalog row of inventory
type Product struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"uniqueIndex;not null;size:200" json:"name"`
	Unit     string `gorm:"size:64" json:"unit"`
	Category string `gorm:"index;size:128" json:"category"`
	Brand    string `gorm:"size:128" json:"brand"`
	Stock    int    `gorm:"not null;default:0" json:"stock"`
	Status   string `gorm:"size:32" json:"status"`
	Image    string `gorm:"size:1024" json:"image"` // URL to product image (optional)
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// StatusForStock derives the display status from a stock quantity.
func StatusForStock(stock int) string {
	if stock == 0 {
		return StatusOutOfStock
	}
	return StatusInStock
}

// InventoryHistory is an immutable audit record of one stock change.
// Rows reference products by id only; deleting a product does not
// delete its history.
type InventoryHistory struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   int64     `gorm:"index" json:"product_id"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	ChangeDate  time.Time `json:"change_date"`
	UserInfo    string    `gorm:"default:'System/Admin'" json:"user_info"`
}

// TableName Specify table name
func (InventoryHistory) TableName() string {
	return "inventory_history"
}
