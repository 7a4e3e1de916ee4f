package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"cloud-kitchen-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsExcludesUnrealizedOrders(t *testing.T) {
	r := setupServer(t)
	_, userToken := createUser(t, "Asha", "asha@example.com", "")
	_, ownerToken := createAdmin(t, "Komalatha", "owner@example.com", models.RoleOwner)
	dal := createMenuItem(t, "Dal Makhani", 240)
	biryani := createMenuItem(t, "Chicken Biryani", 280)

	// one order left pending, one completed, both today
	placeTestOrder(t, r, userToken, dal)
	completed := placeTestOrder(t, r, userToken, biryani)
	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/admin/orders/%d/status", completed),
		ownerToken, map[string]interface{}{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/admin/analytics", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeMap(t, w)

	today := resp["today"].(map[string]interface{})
	assert.EqualValues(t, 1, today["orders"])
	assert.EqualValues(t, 280, today["revenue"])
	assert.EqualValues(t, 280, today["avg_order"])

	month := resp["month"].(map[string]interface{})
	assert.EqualValues(t, 280, month["revenue"])

	byDay := resp["by_day"].([]interface{})
	require.Len(t, byDay, 1)
	assert.EqualValues(t, 1, byDay[0].(map[string]interface{})["orders"])

	topItems := resp["top_items"].([]interface{})
	require.Len(t, topItems, 1)
	top := topItems[0].(map[string]interface{})
	assert.Equal(t, "Chicken Biryani", top["item_name"])
	assert.EqualValues(t, 1, top["total_qty"])
	assert.EqualValues(t, 280, top["revenue"])
}

func TestPublicStats(t *testing.T) {
	r := setupServer(t)
	_, ashaToken := createUser(t, "Asha", "asha@example.com", "")
	_, raviToken := createUser(t, "Ravi", "ravi@example.com", "")
	dal := createMenuItem(t, "Dal Makhani", 240)

	// the public counters include every order regardless of status
	placeTestOrder(t, r, ashaToken, dal)
	placeTestOrder(t, r, ashaToken, dal)
	placeTestOrder(t, r, raviToken, dal)

	w := doJSON(t, r, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decodeMap(t, w)
	assert.EqualValues(t, 3, stats["meals_served"])
	assert.EqualValues(t, 2, stats["happy_customers"])
	assert.Len(t, stats["bestseller_ids"], 1)
}

func TestPublicMenuListsOnlyActiveItems(t *testing.T) {
	r := setupServer(t)
	_, adminToken := createAdmin(t, "Kiran", "kiran@example.com", models.RoleStaff)
	active := createMenuItem(t, "Dal Makhani", 240)
	hidden := createMenuItem(t, "Secret Dish", 999)

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/admin/menu/%d", hidden.ID),
		adminToken, map[string]interface{}{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeList(t, w)
	require.Len(t, items, 1)
	assert.EqualValues(t, active.ID, items[0]["id"])

	// the soft-deleted row is still in storage and visible to admins
	w = doJSON(t, r, http.MethodGet, "/api/admin/menu", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 2)
}
