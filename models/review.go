package models

import "time"

// Review is one rating per (user, order, item), immutable once created.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null"`
	User       User      `json:"-" gorm:"foreignKey:UserID"`
	OrderID    uint      `json:"order_id" gorm:"not null"`
	ItemID     uint      `json:"item_id" gorm:"not null"`
	ItemName   string    `json:"item_name" gorm:"not null"`
	Rating     int       `json:"rating" gorm:"not null"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewComment is an append-only threaded comment on a review.
// UserName is snapshotted at comment time.
type ReviewComment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ReviewID    uint      `json:"review_id" gorm:"not null"`
	UserID      uint      `json:"user_id" gorm:"not null"`
	UserName    string    `json:"user_name" gorm:"not null"`
	CommentText string    `json:"comment_text" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}
