package statemachine

import (
	"testing"

	"cloud-kitchen-api/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want models.OrderStatus
		ok   bool
	}{
		{"pending", models.StatusPending, true},
		{"accepted", models.StatusAccepted, true},
		{"confirmed", models.StatusAccepted, true},
		{"CONFIRMED", models.StatusAccepted, true},
		{"  ready_for_delivery ", models.StatusReadyForDelivery, true},
		{"completed", models.StatusCompleted, true},
		{"shipped", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		if ok {
			assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusCompleted))
	assert.True(t, IsTerminal(models.StatusRejected))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusPending))
	assert.False(t, IsTerminal(models.StatusDelivered))
}

func TestLifecycleMovesForwardOnly(t *testing.T) {
	for _, tr := range Lifecycle() {
		assert.Greater(t, Rank(tr.To), Rank(tr.From),
			"transition %s -> %s goes backward", tr.From, tr.To)
	}
}

func TestTerminalStatesHaveNoExit(t *testing.T) {
	assert.Empty(t, ValidNext(models.StatusCompleted))
	assert.Empty(t, ValidNext(models.StatusRejected))
	assert.Empty(t, ValidNext(models.StatusCancelled))
}

func TestCanForceTransition(t *testing.T) {
	// owners may force anything
	assert.True(t, CanForceTransition(models.RoleOwner, false, models.StatusReadyForDelivery))
	assert.True(t, CanForceTransition(models.RoleOwner, false, models.StatusCompleted))

	// staff blocked from ready_for_delivery until every item is done
	assert.False(t, CanForceTransition(models.RoleStaff, false, models.StatusReadyForDelivery))
	assert.True(t, CanForceTransition(models.RoleStaff, true, models.StatusReadyForDelivery))

	// staff unrestricted on other targets
	assert.True(t, CanForceTransition(models.RoleStaff, false, models.StatusAccepted))
	assert.True(t, CanForceTransition(models.RoleStaff, false, models.StatusCancelled))
}

func TestCascadesItemPrep(t *testing.T) {
	assert.True(t, CascadesItemPrep(models.StatusAccepted))
	assert.True(t, CascadesItemPrep(models.StatusPreparing))
	assert.False(t, CascadesItemPrep(models.StatusPending))
	assert.False(t, CascadesItemPrep(models.StatusReadyForDelivery))
}

func TestCanAdvanceItem(t *testing.T) {
	assert.True(t, CanAdvanceItem(models.ItemPending, models.ItemPreparing))
	assert.True(t, CanAdvanceItem(models.ItemPreparing, models.ItemDone))
	assert.True(t, CanAdvanceItem(models.ItemPending, models.ItemDone))

	// idempotent
	assert.True(t, CanAdvanceItem(models.ItemDone, models.ItemDone))

	// never backward
	assert.False(t, CanAdvanceItem(models.ItemDone, models.ItemPreparing))
	assert.False(t, CanAdvanceItem(models.ItemDone, models.ItemPending))
	assert.False(t, CanAdvanceItem(models.ItemPreparing, models.ItemPending))
}

func TestNormalizeItem(t *testing.T) {
	s, ok := NormalizeItem("DONE")
	assert.True(t, ok)
	assert.Equal(t, models.ItemDone, s)

	_, ok = NormalizeItem("cooked")
	assert.False(t, ok)
}
