package handlers

import (
	"net/http"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/middleware"
	"cloud-kitchen-api/models"
	"cloud-kitchen-api/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// normalizeOrderStatus maps stored status strings (including the legacy
// "confirmed") onto the closed enumeration at the data-access boundary.
func normalizeOrderStatus(o *models.Order) {
	if s, ok := statemachine.Normalize(string(o.Status)); ok {
		o.Status = s
	}
}

type CreateOrderRequest struct {
	Items []struct {
		ItemID   uint `json:"item_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
	TotalAmount     float64 `json:"total_amount" binding:"required,gt=0"`
	DeliveryAddress string  `json:"delivery_address" binding:"required"`
	Phone           string  `json:"phone"`
	Notes           string  `json:"notes"`
}

// CreateOrder places a new order. The kitchen must be open; line items
// snapshot menu name, price and category at submission time. The order
// and its items are written in one transaction.
func CreateOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items, total, and address are required"})
		return
	}

	var kitchen models.KitchenStatus
	if err := config.DB.First(&kitchen, 1).Error; err == nil && !kitchen.IsOpen {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Kitchen is currently closed"})
		return
	}

	var orderItems []models.OrderItem
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.ItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found"})
			return
		}
		if !menuItem.Purchasable() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'" + menuItem.Name + "' is not available right now"})
			return
		}
		orderItems = append(orderItems, models.OrderItem{
			ItemID:     menuItem.ID,
			ItemName:   menuItem.Name,
			ItemPrice:  menuItem.Price,
			Quantity:   reqItem.Quantity,
			Category:   menuItem.Category,
			ItemStatus: models.ItemPending,
		})
	}

	order := models.Order{
		UserID:          userID,
		TotalAmount:     req.TotalAmount,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
		Status:          models.StatusPending,
		Items:           orderItems,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"orderId": order.ID, "message": "Order placed successfully"})
}

// GetMyOrders returns the caller's orders newest-first, with line items
// and the item ids the caller has already reviewed per order
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var orders []models.Order
	err := config.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	type orderWithReviews struct {
		models.Order
		ReviewedItemIDs []uint `json:"reviewed_item_ids"`
	}

	out := make([]orderWithReviews, 0, len(orders))
	for i := range orders {
		normalizeOrderStatus(&orders[i])

		var reviewed []uint
		if err := config.DB.Model(&models.Review{}).
			Where("order_id = ? AND user_id = ?", orders[i].ID, userID).
			Pluck("item_id", &reviewed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		if reviewed == nil {
			reviewed = []uint{}
		}
		out = append(out, orderWithReviews{Order: orders[i], ReviewedItemIDs: reviewed})
	}

	c.JSON(http.StatusOK, out)
}

// GetInvoice returns one of the caller's orders with customer details
// and a generated invoice number
func GetInvoice(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var order models.Order
	err := config.DB.Preload("Items").Preload("User").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	normalizeOrderStatus(&order)

	c.JSON(http.StatusOK, gin.H{
		"invoice_number": "INV-" + uuid.NewString()[:8],
		"order":          order,
		"user_name":      order.User.Name,
		"user_email":     order.User.Email,
	})
}
