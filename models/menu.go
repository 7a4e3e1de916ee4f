package models

import "time"

// StockStatus marks whether a menu item can currently be cooked
type StockStatus string

const (
	StockIn  StockStatus = "IN_STOCK"
	StockOut StockStatus = "OUT_OF_STOCK"
)

// MenuItem is a dish on the menu. Removal is a soft delete via IsActive;
// rows are never removed from storage. An item is purchasable only when
// IsAvailable && StockStatus == IN_STOCK && IsActive.
type MenuItem struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	Name         string      `json:"name" gorm:"not null"`
	Description  string      `json:"description"`
	Price        float64     `json:"price" gorm:"not null"`
	Category     string      `json:"category" gorm:"not null"`
	IsVeg        bool        `json:"is_veg" gorm:"default:true"`
	IsBestseller bool        `json:"is_bestseller" gorm:"default:false"`
	SpiceLevel   string      `json:"spice_level" gorm:"default:'medium'"`
	ImageURL     string      `json:"image_url"`
	IsAvailable  bool        `json:"is_available" gorm:"default:true"`
	StockStatus  StockStatus `json:"stock_status" gorm:"default:'IN_STOCK'"`
	IsActive     bool        `json:"is_active" gorm:"default:true"`
	SortOrder    int         `json:"sort_order" gorm:"default:0"`
	CreatedBy    *uint       `json:"created_by,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Purchasable reports whether the item can be added to a new order.
func (m *MenuItem) Purchasable() bool {
	return m.IsAvailable && m.StockStatus == StockIn && m.IsActive
}

// KitchenStatus is the single global open/closed gate. Exactly one row
// exists, with ID 1.
type KitchenStatus struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	IsOpen      bool      `json:"is_open" gorm:"default:true"`
	UpdatedByID *uint     `json:"updated_by_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}
