package handlers

import (
	"net/http"
	"strings"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/middleware"
	"cloud-kitchen-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type reviewRow struct {
	ID           uint   `json:"id"`
	UserID       uint   `json:"user_id"`
	UserName     string `json:"user_name"`
	ItemID       uint   `json:"item_id"`
	ItemName     string `json:"item_name"`
	Rating       int    `json:"rating"`
	ReviewText   string `json:"review_text"`
	CreatedAt    string `json:"created_at"`
	CommentCount int    `json:"comment_count"`
}

// GetRecentReviews returns the ten newest reviews (public)
func GetRecentReviews(c *gin.Context) {
	var rows []reviewRow
	err := config.DB.Table("reviews").
		Select("reviews.id, reviews.user_id, users.name AS user_name, reviews.item_id, reviews.item_name, reviews.rating, reviews.review_text, reviews.created_at").
		Joins("JOIN users ON users.id = reviews.user_id").
		Order("reviews.created_at DESC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetReviews returns all reviews newest-first with comment counts
func GetReviews(c *gin.Context) {
	var rows []reviewRow
	err := config.DB.Table("reviews").
		Select("reviews.id, reviews.user_id, users.name AS user_name, reviews.item_id, reviews.item_name, reviews.rating, reviews.review_text, reviews.created_at, (SELECT COUNT(*) FROM review_comments WHERE review_comments.review_id = reviews.id) AS comment_count").
		Joins("JOIN users ON users.id = reviews.user_id").
		Order("reviews.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

type SubmitReviewRequest struct {
	OrderID    uint   `json:"order_id" binding:"required"`
	ItemID     uint   `json:"item_id" binding:"required"`
	ItemName   string `json:"item_name" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	ReviewText string `json:"review_text"`
}

// SubmitReview records one rating per (user, order, item). The order
// must belong to the caller; a second review for the same triple is
// rejected. Reviews are immutable once created.
func SubmitReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id, item_id, item_name, and rating are required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Order not found or not yours"})
		return
	}

	var count int64
	err := config.DB.Model(&models.Review{}).
		Where("order_id = ? AND item_id = ? AND user_id = ?", req.OrderID, req.ItemID, userID).
		Count(&count).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this item for this order"})
		return
	}

	review := models.Review{
		UserID:     userID,
		OrderID:    req.OrderID,
		ItemID:     req.ItemID,
		ItemName:   req.ItemName,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetReviewComments returns a review's comments oldest-first
func GetReviewComments(c *gin.Context) {
	var comments []models.ReviewComment
	err := config.DB.Where("review_id = ?", c.Param("id")).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

type AddCommentRequest struct {
	CommentText string `json:"comment_text" binding:"required"`
}

// AddComment appends a comment to a review. Any authenticated user may
// comment on any review.
func AddComment(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CommentText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	var review models.Review
	if err := config.DB.First(&review, c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	comment := models.ReviewComment{
		ReviewID:    review.ID,
		UserID:      userID,
		UserName:    middleware.GetUserName(c),
		CommentText: strings.TrimSpace(req.CommentText),
	}
	if err := config.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}
