package handlers

import (
	"net/http"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/models"
	"cloud-kitchen-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetMenu returns all active menu items, grouped for display by
// category then sort order (public)
func GetMenu(c *gin.Context) {
	var items []models.MenuItem
	query := config.DB.Where("is_active = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("is_veg") == "true" {
		query = query.Where("is_veg = ?", true)
	}

	if err := query.Order("category, sort_order, id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetKitchen returns the global open/closed flag (public)
func GetKitchen(c *gin.Context) {
	var kitchen models.KitchenStatus
	if err := config.DB.First(&kitchen, 1).Error; err != nil {
		// missing singleton row, treat the kitchen as open
		c.JSON(http.StatusOK, gin.H{"is_open": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_open": kitchen.IsOpen})
}

// GetStats returns the front-page counters (public)
func GetStats(c *gin.Context) {
	var mealsServed int64
	if err := config.DB.Model(&models.Order{}).Count(&mealsServed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	var happyCustomers int64
	if err := config.DB.Model(&models.Order{}).Distinct("user_id").Count(&happyCustomers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	var bestsellerIDs []uint
	err := config.DB.Model(&models.OrderItem{}).
		Group("item_id").
		Order("SUM(quantity) DESC").
		Limit(8).
		Pluck("item_id", &bestsellerIDs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meals_served":    mealsServed,
		"happy_customers": happyCustomers,
		"bestseller_ids":  bestsellerIDs,
	})
}

// GetLifecycleInfo publishes the intended order lifecycle graph
func GetLifecycleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"transitions":     statemachine.Lifecycle(),
		"terminal_states": []models.OrderStatus{models.StatusCompleted, models.StatusRejected, models.StatusCancelled},
		"item_statuses":   []models.ItemStatus{models.ItemPending, models.ItemPreparing, models.ItemDone},
	})
}
