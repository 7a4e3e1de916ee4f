package models

import "time"

// OrderStatus represents all possible states of a kitchen order
type OrderStatus string

const (
	StatusPending          OrderStatus = "pending"
	StatusAccepted         OrderStatus = "accepted"
	StatusPreparing        OrderStatus = "preparing"
	StatusReadyForDelivery OrderStatus = "ready_for_delivery"
	StatusOutForDelivery   OrderStatus = "out_for_delivery"
	StatusDelivered        OrderStatus = "delivered"
	StatusCompleted        OrderStatus = "completed"
	StatusRejected         OrderStatus = "rejected"
	StatusCancelled        OrderStatus = "cancelled"
)

// ItemStatus tracks kitchen prep progress of a single line item
type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemDone      ItemStatus = "done"
)

type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	UserID          uint        `json:"user_id" gorm:"not null"`
	User            User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TotalAmount     float64     `json:"total_amount" gorm:"not null"`
	DeliveryAddress string      `json:"delivery_address" gorm:"not null"`
	Phone           string      `json:"phone"`
	Notes           string      `json:"notes"`
	Status          OrderStatus `json:"status" gorm:"not null;default:'pending'"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem is an immutable snapshot of a menu item at purchase time.
// ItemName, ItemPrice and Category do not follow later menu edits.
type OrderItem struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	OrderID    uint       `json:"order_id" gorm:"not null"`
	ItemID     uint       `json:"item_id" gorm:"not null"`
	ItemName   string     `json:"item_name" gorm:"not null"`
	ItemPrice  float64    `json:"item_price" gorm:"not null"`
	Quantity   int        `json:"quantity" gorm:"not null"`
	Category   string     `json:"category"`
	ItemStatus ItemStatus `json:"item_status" gorm:"default:'pending'"`
}
