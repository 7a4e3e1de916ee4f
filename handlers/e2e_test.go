package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"cloud-kitchen-api/handlers"
	"cloud-kitchen-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderDayFlow walks one customer and one staff account through a
// full day: OTP signup, placing an order, the kitchen working the order
// item by item, and the customer reviewing a dish afterwards.
func TestOrderDayFlow(t *testing.T) {
	r := setupServer(t)
	sender := &recordingSender{}
	handlers.EmailSender = sender

	paneer := createMenuItem(t, "Paneer Butter Masala", 260)
	biryani := createMenuItem(t, "Hyderabadi Biryani", 310)
	_, staffToken := createAdmin(t, "Kiran", "kiran@example.com", models.RoleStaff)

	// Signup over email OTP.
	w := doJSON(t, r, http.MethodPost, "/api/auth/send-otp", "", map[string]interface{}{
		"target": "asha@example.com", "target_type": "email", "otp_type": "signup",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotEmpty(t, sender.Codes)

	w = doJSON(t, r, http.MethodPost, "/api/auth/complete-signup", "", map[string]interface{}{
		"name": "Asha", "email": "asha@example.com", "password": "password123",
		"otp_code": sender.lastCode(), "otp_target": "asha@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	userToken := decodeMap(t, w)["token"].(string)
	require.NotEmpty(t, userToken)

	// Place an order for two dishes.
	w = doJSON(t, r, http.MethodPost, "/api/orders", userToken, orderBody(
		[]map[string]interface{}{
			{"item_id": paneer.ID, "quantity": 1},
			{"item_id": biryani.ID, "quantity": 2},
		}, 880, "12 MG Road"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := uint(decodeMap(t, w)["orderId"].(float64))

	w = doJSON(t, r, http.MethodGet, "/api/orders", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", decodeList(t, w)[0]["status"])

	// Accepting the order moves every pending line item into preparing.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", orderID),
		staffToken, map[string]interface{}{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	accepted := decodeMap(t, w)
	assert.Equal(t, "accepted", accepted["status"])
	items := accepted["items"].([]interface{})
	require.Len(t, items, 2)
	for _, raw := range items {
		assert.Equal(t, "preparing", raw.(map[string]interface{})["item_status"])
	}

	// Staff cannot ship the order while dishes are still on the stove.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", orderID),
		staffToken, map[string]interface{}{"status": "ready_for_delivery"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Finish each dish; all_done flips on the last one.
	for i, raw := range items {
		itemID := uint(raw.(map[string]interface{})["id"].(float64))
		w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/admin/order-items/%d/status", itemID),
			staffToken, map[string]interface{}{"item_status": "done"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, i == len(items)-1, decodeMap(t, w)["all_done"])
	}

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", orderID),
		staffToken, map[string]interface{}{"status": "ready_for_delivery"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "ready_for_delivery", decodeMap(t, w)["status"])

	// The customer reviews the biryani; a second rating for the same dish
	// on the same order is refused.
	review := map[string]interface{}{
		"order_id": orderID, "item_id": biryani.ID, "item_name": biryani.Name,
		"rating": 5, "review_text": "Perfectly spiced",
	}
	w = doJSON(t, r, http.MethodPost, "/api/reviews", userToken, review)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/reviews", userToken, review)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The dish now shows as reviewed on the customer's order history.
	w = doJSON(t, r, http.MethodGet, "/api/orders", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decodeList(t, w)
	require.Len(t, orders, 1)
	reviewed := orders[0]["reviewed_item_ids"].([]interface{})
	require.Len(t, reviewed, 1)
	assert.EqualValues(t, biryani.ID, reviewed[0])
}
