package handlers

import (
	"net/http"
	"strconv"
	"time"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/middleware"
	"cloud-kitchen-api/models"
	"cloud-kitchen-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type adminOrderRow struct {
	ID              uint      `json:"id"`
	TotalAmount     float64   `json:"total_amount"`
	DeliveryAddress string    `json:"delivery_address"`
	OrderPhone      string    `json:"order_phone"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	UserID          uint      `json:"user_id"`
	UserName        string    `json:"user_name"`
	UserEmail       string    `json:"user_email"`
	ItemCount       int       `json:"item_count"`
}

// AdminListOrders returns orders newest-first with customer details.
// Filterable by status; searchable case-insensitively across customer
// name, email, zero-padded order id and phone.
func AdminListOrders(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		limit = 100
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	query := config.DB.Table("orders").
		Select("orders.id, orders.total_amount, orders.delivery_address, orders.phone AS order_phone, orders.notes, orders.status, orders.created_at, orders.updated_at, users.id AS user_id, users.name AS user_name, users.email AS user_email, (SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id) AS item_count").
		Joins("JOIN users ON users.id = orders.user_id")

	if status := c.Query("status"); status != "" && status != "all" {
		norm, ok := statemachine.Normalize(status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		if norm == models.StatusAccepted {
			// stored data from the old schema may still say "confirmed"
			query = query.Where("orders.status IN ?", []string{"accepted", "confirmed"})
		} else {
			query = query.Where("orders.status = ?", string(norm))
		}
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"LOWER(users.name) LIKE LOWER(?) OR LOWER(users.email) LIKE LOWER(?) OR printf('%06d', orders.id) LIKE ? OR orders.phone LIKE ?",
			like, like, like, like,
		)
	}

	var rows []adminOrderRow
	err = query.Order("orders.created_at DESC").Limit(limit).Offset(offset).Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	for i := range rows {
		if s, ok := statemachine.Normalize(rows[i].Status); ok {
			rows[i].Status = string(s)
		}
	}
	c.JSON(http.StatusOK, rows)
}

// AdminGetOrder returns one order with customer details and line items
func AdminGetOrder(c *gin.Context) {
	var order models.Order
	err := config.DB.Preload("Items").Preload("User").First(&order, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	normalizeOrderStatus(&order)

	c.JSON(http.StatusOK, gin.H{
		"order":      order,
		"user_name":  order.User.Name,
		"user_email": order.User.Email,
	})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus sets an order's status. The lifecycle graph is
// advisory for the console; the only server-side rule is the force
// policy: staff may not mark ready_for_delivery while items remain
// undone. Entering accepted or preparing bulk-advances pending items to
// preparing.
func AdminUpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status required"})
		return
	}
	target, ok := statemachine.Normalize(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	allDone := true
	for _, item := range order.Items {
		if item.ItemStatus != models.ItemDone {
			allDone = false
			break
		}
	}

	role := middleware.GetAdminRole(c)
	if !statemachine.CanForceTransition(role, allDone, target) {
		c.JSON(http.StatusForbidden, gin.H{"error": "All items must be done before the order is ready for delivery"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if statemachine.CascadesItemPrep(target) {
			if err := tx.Model(&models.OrderItem{}).
				Where("order_id = ? AND item_status = ?", order.ID, models.ItemPending).
				Update("item_status", models.ItemPreparing).Error; err != nil {
				return err
			}
		}
		return tx.Model(&order).Updates(map[string]interface{}{
			"status":     target,
			"updated_at": time.Now(),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	config.DB.Preload("Items").First(&order, order.ID)
	normalizeOrderStatus(&order)
	c.JSON(http.StatusOK, order)
}

type UpdateItemStatusRequest struct {
	ItemStatus string `json:"item_status" binding:"required"`
}

// AdminUpdateItemStatus advances one line item through its prep states.
// The progression is monotonic: pending → preparing → done, never
// backward. Returns whether every item of the parent order is now done,
// so the console can offer the ready_for_delivery transition.
func AdminUpdateItemStatus(c *gin.Context) {
	var req UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status required"})
		return
	}
	target, ok := statemachine.NormalizeItem(req.ItemStatus)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var item models.OrderItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if !statemachine.CanAdvanceItem(item.ItemStatus, target) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Item status can only move forward: pending, preparing, done",
		})
		return
	}

	if err := config.DB.Model(&item).Update("item_status", target).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	var total, done int64
	config.DB.Model(&models.OrderItem{}).Where("order_id = ?", item.OrderID).Count(&total)
	config.DB.Model(&models.OrderItem{}).
		Where("order_id = ? AND item_status = ?", item.OrderID, models.ItemDone).
		Count(&done)

	c.JSON(http.StatusOK, gin.H{
		"item":     item,
		"all_done": total > 0 && done == total,
	})
}

// AdminGetKitchen returns the kitchen switch row
func AdminGetKitchen(c *gin.Context) {
	var kitchen models.KitchenStatus
	if err := config.DB.First(&kitchen, 1).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"is_open": true})
		return
	}
	c.JSON(http.StatusOK, kitchen)
}

type ToggleKitchenRequest struct {
	IsOpen *bool `json:"is_open" binding:"required"`
}

// AdminToggleKitchen flips the global order-intake gate. Last writer
// wins; there is no lock around concurrent toggles.
func AdminToggleKitchen(c *gin.Context) {
	var req ToggleKitchenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_open required"})
		return
	}
	adminID := middleware.GetAdminID(c)

	err := config.DB.Model(&models.KitchenStatus{}).Where("id = ?", 1).
		Updates(map[string]interface{}{
			"is_open":       *req.IsOpen,
			"updated_by_id": adminID,
			"updated_at":    time.Now(),
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update kitchen status"})
		return
	}

	var kitchen models.KitchenStatus
	config.DB.First(&kitchen, 1)
	c.JSON(http.StatusOK, kitchen)
}
