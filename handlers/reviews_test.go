package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"cloud-kitchen-api/config"
	"cloud-kitchen-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReviewOncePerItemPerOrder(t *testing.T) {
	r := setupServer(t)
	_, token := createUser(t, "Asha", "asha@example.com", "")
	dal := createMenuItem(t, "Dal Makhani", 240)
	naan := createMenuItem(t, "Garlic Naan", 60)

	w := doJSON(t, r, http.MethodPost, "/api/orders", token,
		orderBody([]map[string]interface{}{
			{"item_id": dal.ID, "quantity": 1},
			{"item_id": naan.ID, "quantity": 2},
		}, 360, "12 MG Road"))
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeMap(t, w)["orderId"]

	review := map[string]interface{}{
		"order_id": orderID, "item_id": dal.ID, "item_name": dal.Name,
		"rating": 5, "review_text": "Rich and buttery",
	}
	w = doJSON(t, r, http.MethodPost, "/api/reviews", token, review)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// same (user, order, item) again
	w = doJSON(t, r, http.MethodPost, "/api/reviews", token, review)
	assert.Equal(t, http.StatusConflict, w.Code)

	// a different item in the same order is fine
	review["item_id"] = naan.ID
	review["item_name"] = naan.Name
	w = doJSON(t, r, http.MethodPost, "/api/reviews", token, review)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSubmitReviewRequiresOwnOrder(t *testing.T) {
	r := setupServer(t)
	_, ownerToken := createUser(t, "Asha", "asha@example.com", "")
	_, otherToken := createUser(t, "Ravi", "ravi@example.com", "")
	item := createMenuItem(t, "Butter Chicken", 300)

	w := doJSON(t, r, http.MethodPost, "/api/orders", ownerToken,
		orderBody([]map[string]interface{}{{"item_id": item.ID, "quantity": 1}}, 300, "12 MG Road"))
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeMap(t, w)["orderId"]

	w = doJSON(t, r, http.MethodPost, "/api/reviews", otherToken, map[string]interface{}{
		"order_id": orderID, "item_id": item.ID, "item_name": item.Name, "rating": 4,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitReviewRatingBounds(t *testing.T) {
	r := setupServer(t)
	_, token := createUser(t, "Asha", "asha@example.com", "")
	item := createMenuItem(t, "Masala Chai", 50)

	w := doJSON(t, r, http.MethodPost, "/api/orders", token,
		orderBody([]map[string]interface{}{{"item_id": item.ID, "quantity": 1}}, 50, "12 MG Road"))
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeMap(t, w)["orderId"]

	for _, rating := range []int{0, 6, -1} {
		w = doJSON(t, r, http.MethodPost, "/api/reviews", token, map[string]interface{}{
			"order_id": orderID, "item_id": item.ID, "item_name": item.Name, "rating": rating,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating=%d", rating)
	}
}

func TestReviewListingAndComments(t *testing.T) {
	r := setupServer(t)
	user, token := createUser(t, "Asha", "asha@example.com", "")
	_, commenterToken := createUser(t, "Ravi", "ravi@example.com", "")
	item := createMenuItem(t, "Palak Paneer", 240)

	w := doJSON(t, r, http.MethodPost, "/api/orders", token,
		orderBody([]map[string]interface{}{{"item_id": item.ID, "quantity": 1}}, 240, "12 MG Road"))
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := decodeMap(t, w)["orderId"]

	w = doJSON(t, r, http.MethodPost, "/api/reviews", token, map[string]interface{}{
		"order_id": orderID, "item_id": item.ID, "item_name": item.Name, "rating": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reviewID := uint(decodeMap(t, w)["id"].(float64))

	// recent reviews are public
	w = doJSON(t, r, http.MethodGet, "/api/reviews/recent", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	recent := decodeList(t, w)
	require.Len(t, recent, 1)
	assert.Equal(t, user.Name, recent[0]["user_name"])

	// any authenticated user may comment, not just the author
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/reviews/%d/comments", reviewID),
		commenterToken, map[string]interface{}{"comment_text": "  Totally agree!  "})
	require.Equal(t, http.StatusCreated, w.Code)
	comment := decodeMap(t, w)
	assert.Equal(t, "Totally agree!", comment["comment_text"])
	assert.Equal(t, "Ravi", comment["user_name"])

	// blank comments are refused
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/reviews/%d/comments", reviewID),
		commenterToken, map[string]interface{}{"comment_text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// comment on a missing review
	w = doJSON(t, r, http.MethodPost, "/api/reviews/9999/comments",
		commenterToken, map[string]interface{}{"comment_text": "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// comment count shows up in the authenticated listing
	w = doJSON(t, r, http.MethodGet, "/api/reviews", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decodeList(t, w)
	require.Len(t, all, 1)
	assert.EqualValues(t, 1, all[0]["comment_count"])

	// reviewed item id now reported with the order
	w = doJSON(t, r, http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decodeList(t, w)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0]["reviewed_item_ids"], 1)

	var count int64
	config.DB.Model(&models.Review{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
