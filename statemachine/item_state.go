package statemachine

import (
	"strings"

	"cloud-kitchen-api/models"
)

var itemRank = map[models.ItemStatus]int{
	models.ItemPending:   0,
	models.ItemPreparing: 1,
	models.ItemDone:      2,
}

// NormalizeItem maps a raw string onto the item status enumeration.
func NormalizeItem(raw string) (models.ItemStatus, bool) {
	s := models.ItemStatus(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := itemRank[s]
	return s, ok
}

// CanAdvanceItem enforces the monotonic pending → preparing → done
// progression. Setting the current status again is allowed (idempotent);
// moving backward is not.
func CanAdvanceItem(from, to models.ItemStatus) bool {
	fr, ok := itemRank[from]
	if !ok {
		// unknown stored value, treat as pending
		fr = 0
	}
	tr, ok := itemRank[to]
	if !ok {
		return false
	}
	return tr >= fr
}
