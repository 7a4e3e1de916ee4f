package handlers

import (
	"net/http"
	"time"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/models"

	"github.com/gin-gonic/gin"
)

// excludedFromRevenue lists statuses that never count toward revenue:
// orders that were not (yet) accepted by the kitchen.
var excludedFromRevenue = []string{
	string(models.StatusPending),
	string(models.StatusRejected),
	string(models.StatusCancelled),
}

type windowRollup struct {
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

func rollupSince(since time.Time) (windowRollup, error) {
	var out windowRollup
	err := config.DB.Model(&models.Order{}).
		Where("created_at >= ? AND status NOT IN ?", since, excludedFromRevenue).
		Count(&out.Orders).Error
	if err != nil {
		return out, err
	}
	err = config.DB.Model(&models.Order{}).
		Where("created_at >= ? AND status NOT IN ?", since, excludedFromRevenue).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&out.Revenue).Error
	return out, err
}

type dayRollup struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// AdminAnalytics returns owner-only revenue rollups: today / month /
// year windows, a 30-day daily series, and the top ten items by summed
// quantity. Revenue excludes pending, rejected and cancelled orders.
func AdminAnalytics(c *gin.Context) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	today, err := rollupSince(dayStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	month, err := rollupSince(monthStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	year, err := rollupSince(yearStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	avgOrder := 0.0
	if today.Orders > 0 {
		avgOrder = today.Revenue / float64(today.Orders)
	}

	// 30-day series, bucketed per calendar day in server-local time
	var windowOrders []models.Order
	err = config.DB.Select("id, total_amount, created_at").
		Where("created_at >= ? AND status NOT IN ?", dayStart.AddDate(0, 0, -29), excludedFromRevenue).
		Order("created_at asc").
		Find(&windowOrders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}
	byDay := []dayRollup{}
	index := map[string]int{}
	for _, o := range windowOrders {
		day := o.CreatedAt.Local().Format("2006-01-02")
		i, seen := index[day]
		if !seen {
			index[day] = len(byDay)
			byDay = append(byDay, dayRollup{Date: day})
			i = len(byDay) - 1
		}
		byDay[i].Orders++
		byDay[i].Revenue += o.TotalAmount
	}

	type topItem struct {
		ItemName string  `json:"item_name"`
		TotalQty int     `json:"total_qty"`
		Revenue  float64 `json:"revenue"`
	}
	var topItems []topItem
	err = config.DB.Table("order_items").
		Select("order_items.item_name, SUM(order_items.quantity) AS total_qty, SUM(order_items.item_price * order_items.quantity) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status NOT IN ?", excludedFromRevenue).
		Group("order_items.item_name").
		Order("total_qty DESC").
		Limit(10).
		Scan(&topItems).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"today": gin.H{
			"orders":    today.Orders,
			"revenue":   today.Revenue,
			"avg_order": avgOrder,
		},
		"month":     month,
		"year":      year,
		"by_day":    byDay,
		"top_items": topItems,
	})
}
