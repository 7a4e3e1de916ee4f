package statemachine

import (
	"strings"

	"cloud-kitchen-api/models"
)

// statusRank orders the forward-only lifecycle. Terminal branches
// (rejected, cancelled) sit outside the main progression.
var statusRank = map[models.OrderStatus]int{
	models.StatusPending:          0,
	models.StatusAccepted:         1,
	models.StatusPreparing:        2,
	models.StatusReadyForDelivery: 3,
	models.StatusOutForDelivery:   4,
	models.StatusDelivered:        5,
	models.StatusCompleted:        6,
	models.StatusRejected:         7,
	models.StatusCancelled:        8,
}

// Normalize maps raw stored/submitted status strings onto the closed
// enumeration. The legacy name "confirmed" is an alias of "accepted"
// from an earlier schema version.
func Normalize(raw string) (models.OrderStatus, bool) {
	s := models.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == "confirmed" {
		s = models.StatusAccepted
	}
	_, ok := statusRank[s]
	return s, ok
}

// IsValidStatus reports whether raw names a recognized order status.
func IsValidStatus(raw string) bool {
	_, ok := Normalize(raw)
	return ok
}

// IsTerminal reports whether no further transition is allowed.
func IsTerminal(s models.OrderStatus) bool {
	switch s {
	case models.StatusCompleted, models.StatusRejected, models.StatusCancelled:
		return true
	}
	return false
}

// Rank exposes the lifecycle ordering for comparisons.
func Rank(s models.OrderStatus) int {
	return statusRank[s]
}

// Transition defines one edge of the intended order lifecycle. The API
// does not enforce this graph on admin transitions; it is the contract
// the console UI follows, published for documentation.
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

var lifecycle = []Transition{
	{models.StatusPending, models.StatusAccepted},
	{models.StatusPending, models.StatusRejected},
	{models.StatusAccepted, models.StatusPreparing},
	{models.StatusPreparing, models.StatusReadyForDelivery},
	{models.StatusReadyForDelivery, models.StatusOutForDelivery},
	{models.StatusOutForDelivery, models.StatusDelivered},
	{models.StatusDelivered, models.StatusCompleted},
	{models.StatusPending, models.StatusCancelled},
	{models.StatusAccepted, models.StatusCancelled},
	{models.StatusPreparing, models.StatusCancelled},
	{models.StatusReadyForDelivery, models.StatusCancelled},
	{models.StatusOutForDelivery, models.StatusCancelled},
}

// Lifecycle returns the full intended transition graph.
func Lifecycle() []Transition {
	return lifecycle
}

// ValidNext returns the intended next states from a given state.
func ValidNext(from models.OrderStatus) []models.OrderStatus {
	var next []models.OrderStatus
	for _, t := range lifecycle {
		if t.From == from {
			next = append(next, t.To)
		}
	}
	return next
}

// CascadesItemPrep reports whether entering the status starts kitchen
// prep: all still-pending line items bulk-advance to preparing.
func CascadesItemPrep(s models.OrderStatus) bool {
	return s == models.StatusAccepted || s == models.StatusPreparing
}

// CanForceTransition is the authorization policy for admin-driven status
// changes. Owners may set any status on any order. Staff are refused
// ready_for_delivery while line items remain undone; every other target
// is allowed.
func CanForceTransition(role models.AdminRole, allItemsDone bool, target models.OrderStatus) bool {
	if role == models.RoleOwner {
		return true
	}
	if target == models.StatusReadyForDelivery && !allItemsDone {
		return false
	}
	return true
}
