package handlers

import (
	"net/http"
	"time"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/middleware"
	"cloud-kitchen-api/models"

	"github.com/gin-gonic/gin"
)

// AdminListMenu returns the full catalog, inactive items included
func AdminListMenu(c *gin.Context) {
	var items []models.MenuItem
	if err := config.DB.Order("category, sort_order, id").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
		return
	}
	c.JSON(http.StatusOK, items)
}

type CreateMenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required"`
	IsVeg       bool    `json:"is_veg"`
	SpiceLevel  string  `json:"spice_level"`
	ImageURL    string  `json:"image_url"`
	SortOrder   int     `json:"sort_order"`
}

// AdminCreateMenuItem adds a dish to the catalog
func AdminCreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, price and category required"})
		return
	}
	if req.SpiceLevel == "" {
		req.SpiceLevel = "medium"
	}
	adminID := middleware.GetAdminID(c)

	item := models.MenuItem{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		IsVeg:        req.IsVeg,
		SpiceLevel:   req.SpiceLevel,
		ImageURL:     req.ImageURL,
		IsAvailable:  true,
		StockStatus:  models.StockIn,
		IsActive:     true,
		SortOrder:    req.SortOrder,
		CreatedBy:    &adminID,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	IsVeg       *bool    `json:"is_veg"`
	SpiceLevel  *string  `json:"spice_level"`
	ImageURL    *string  `json:"image_url"`
	IsAvailable *bool    `json:"is_available"`
	StockStatus *string  `json:"stock_status"`
	IsActive    *bool    `json:"is_active"`
	SortOrder   *int     `json:"sort_order"`
}

// AdminUpdateMenuItem patches any subset of editable fields. Setting
// is_active=false is the soft delete; rows are never removed.
func AdminUpdateMenuItem(c *gin.Context) {
	var req UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
			return
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.IsVeg != nil {
		updates["is_veg"] = *req.IsVeg
	}
	if req.SpiceLevel != nil {
		updates["spice_level"] = *req.SpiceLevel
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.StockStatus != nil {
		s := models.StockStatus(*req.StockStatus)
		if s != models.StockIn && s != models.StockOut {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock status"})
			return
		}
		updates["stock_status"] = s
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.SortOrder != nil {
		updates["sort_order"] = *req.SortOrder
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	updates["updated_at"] = time.Now()

	res := config.DB.Model(&models.MenuItem{}).Where("id = ?", c.Param("id")).Updates(updates)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	var item models.MenuItem
	config.DB.First(&item, c.Param("id"))
	c.JSON(http.StatusOK, item)
}
