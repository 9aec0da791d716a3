package model_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/invengine/internal/game/equip"
	"github.com/udisondev/invengine/internal/model"
	"github.com/udisondev/invengine/internal/testutil"
)

func click(t *testing.T, inv *model.Inventory, slot model.SlotID, who model.Wearer) model.ClickResult {
	t.Helper()
	res, err := inv.Click(context.Background(), slot, equip.NewValidator(), who)
	require.NoError(t, err)
	return res
}

func itemAt(t *testing.T, inv *model.Inventory, slot model.SlotID) int32 {
	t.Helper()
	it, ok := inv.Item(slot)
	require.True(t, ok, "slot %s is empty", slot)
	return it.ItemID
}

func TestClick_PickUpAndPlace(t *testing.T) {
	w := testutil.Fixtures.Warrior
	inv := newInv(model.NewItem(testutil.GemID, model.SlotGeneral1, 1))

	assert.Equal(t, model.ClickNoop, click(t, inv, model.SlotGeneral3, w), "idle on empty slot")
	assert.Equal(t, model.TransferIdle, inv.TransferState())

	assert.Equal(t, model.ClickPickedUp, click(t, inv, model.SlotGeneral1, w))
	assert.Equal(t, model.TransferHolding, inv.TransferState())
	assert.Equal(t, testutil.GemID, itemAt(t, inv, model.SlotCursor))
	assert.False(t, inv.IsOccupied(model.SlotGeneral1))

	assert.Equal(t, model.ClickNoop, click(t, inv, model.SlotCursor, w), "clicking the cursor keeps holding")
	assert.Equal(t, model.TransferHolding, inv.TransferState())

	assert.Equal(t, model.ClickPlaced, click(t, inv, model.SlotGeneral2, w))
	assert.Equal(t, model.TransferIdle, inv.TransferState())
	assert.Equal(t, testutil.GemID, itemAt(t, inv, model.SlotGeneral2))
}

func TestClick_Swap(t *testing.T) {
	w := testutil.Fixtures.Warrior
	inv := newInv(
		model.NewItem(testutil.SwordID, model.SlotGeneral1, 1),
		model.NewItem(testutil.GemID, model.SlotGeneral2, 1),
	)

	click(t, inv, model.SlotGeneral1, w)
	assert.Equal(t, model.ClickSwapped, click(t, inv, model.SlotGeneral2, w))

	assert.Equal(t, testutil.SwordID, itemAt(t, inv, model.SlotGeneral2))
	assert.Equal(t, testutil.GemID, itemAt(t, inv, model.SlotCursor))
	assert.Equal(t, 2, inv.TotalCount())
	assert.Equal(t, model.TransferHolding, inv.TransferState())
}

func TestClick_EquipValidation(t *testing.T) {
	t.Run("allowed class", func(t *testing.T) {
		inv := newInv(model.NewItem(testutil.SwordID, model.SlotGeneral1, 1))
		click(t, inv, model.SlotGeneral1, testutil.Fixtures.Warrior)
		assert.Equal(t, model.ClickPlaced, click(t, inv, model.SlotPrimary, testutil.Fixtures.Warrior))
		assert.Equal(t, testutil.SwordID, itemAt(t, inv, model.SlotPrimary))
	})

	t.Run("wrong class keeps cursor", func(t *testing.T) {
		inv := newInv(model.NewItem(testutil.SwordID, model.SlotGeneral1, 1))
		click(t, inv, model.SlotGeneral1, testutil.Fixtures.Wizard)
		assert.Equal(t, model.ClickRejected, click(t, inv, model.SlotPrimary, testutil.Fixtures.Wizard))
		assert.Equal(t, testutil.SwordID, itemAt(t, inv, model.SlotCursor))
		assert.False(t, inv.IsOccupied(model.SlotPrimary))
	})

	t.Run("wrong slot", func(t *testing.T) {
		inv := newInv(model.NewItem(testutil.SwordID, model.SlotGeneral1, 1))
		click(t, inv, model.SlotGeneral1, testutil.Fixtures.Warrior)
		assert.Equal(t, model.ClickRejected, click(t, inv, model.SlotHead, testutil.Fixtures.Warrior))
	})

	t.Run("swap with equipped", func(t *testing.T) {
		inv := newInv(
			model.NewItem(testutil.HelmID, model.SlotHead, 1),
			model.NewItem(testutil.GreatHelmID, model.SlotGeneral1, 1),
		)
		click(t, inv, model.SlotGeneral1, testutil.Fixtures.Warrior)
		assert.Equal(t, model.ClickSwapped, click(t, inv, model.SlotHead, testutil.Fixtures.Warrior))
		assert.Equal(t, testutil.GreatHelmID, itemAt(t, inv, model.SlotHead))
		assert.Equal(t, testutil.HelmID, itemAt(t, inv, model.SlotCursor))
	})
}

func TestClick_ContainerCarriesContents(t *testing.T) {
	w := testutil.Fixtures.Warrior
	inv := newInv(
		model.NewItem(testutil.SmallBagID, model.SlotGeneral1, 1),
		model.NewItem(testutil.GemID, 262, 1),
		model.NewItem(testutil.SwordID, 264, 1),
	)

	require.Equal(t, model.ClickPickedUp, click(t, inv, model.SlotGeneral1, w))
	assert.Equal(t, testutil.GemID, itemAt(t, inv, 342))
	assert.Equal(t, testutil.SwordID, itemAt(t, inv, 344))
	assert.False(t, inv.IsOccupied(262))

	require.Equal(t, model.ClickPlaced, click(t, inv, model.SlotGeneral3, w))
	assert.Equal(t, testutil.SmallBagID, itemAt(t, inv, model.SlotGeneral3))
	assert.Equal(t, testutil.GemID, itemAt(t, inv, 282))
	assert.Equal(t, testutil.SwordID, itemAt(t, inv, 284))
	assert.Equal(t, 3, inv.TotalCount())
}

func TestClick_ContainerSwapCarriesBothBags(t *testing.T) {
	w := testutil.Fixtures.Warrior
	inv := newInv(
		model.NewItem(testutil.SmallBagID, model.SlotGeneral1, 1),
		model.NewItem(testutil.GemID, 263, 1),
		model.NewItem(testutil.LargeBagID, model.SlotGeneral2, 1),
		model.NewItem(testutil.SwordID, 272, 1),
	)

	click(t, inv, model.SlotGeneral1, w)
	require.Equal(t, model.ClickSwapped, click(t, inv, model.SlotGeneral2, w))

	assert.Equal(t, testutil.SmallBagID, itemAt(t, inv, model.SlotGeneral2))
	assert.Equal(t, testutil.GemID, itemAt(t, inv, 273))
	assert.Equal(t, testutil.LargeBagID, itemAt(t, inv, model.SlotCursor))
	assert.Equal(t, testutil.SwordID, itemAt(t, inv, 342))
	assert.Equal(t, 4, inv.TotalCount())
}

func TestClick_ContainerPlacementRules(t *testing.T) {
	w := testutil.Fixtures.Warrior
	inv := newInv(
		model.NewItem(testutil.LargeBagID, model.SlotGeneral1, 1),
		model.NewItem(testutil.SmallBagID, model.SlotGeneral2, 1),
	)

	click(t, inv, model.SlotGeneral2, w)
	assert.Equal(t, model.ClickRejected, click(t, inv, 262, w), "no bags inside bags")
	assert.Equal(t, model.ClickRejected, click(t, inv, model.SlotBack, w), "no bags in equip slots")
	assert.Equal(t, testutil.SmallBagID, itemAt(t, inv, model.SlotCursor))
}

func TestClick_BagSlotCapacity(t *testing.T) {
	w := testutil.Fixtures.Warrior
	inv := newInv(
		model.NewItem(testutil.SmallBagID, model.SlotGeneral1, 1),
		model.NewItem(testutil.GemID, model.SlotGeneral2, 1),
	)

	click(t, inv, model.SlotGeneral2, w)
	assert.Equal(t, model.ClickRejected, click(t, inv, 270, w), "index 8 is past an 8-slot bag")
	assert.Equal(t, model.ClickRejected, click(t, inv, 282, w), "General3 holds no container")
	assert.Equal(t, model.ClickPlaced, click(t, inv, 269, w))
}

func TestClick_InvalidSlots(t *testing.T) {
	inv := newInv(model.NewItem(testutil.GemID, model.SlotGeneral1, 1))
	ctx := context.Background()
	v := equip.NewValidator()

	_, err := inv.Click(ctx, 5000, v, testutil.Fixtures.Warrior)
	assert.ErrorIs(t, err, model.ErrInvalidSlot)

	_, err = inv.Click(ctx, 343, v, testutil.Fixtures.Warrior)
	assert.ErrorIs(t, err, model.ErrInvalidSlot, "cursor bag is not addressable")
}

func TestClick_UnresolvedCursorItem(t *testing.T) {
	inv := newInv(model.NewItem(999999, model.SlotCursor, 1))

	_, err := inv.Click(context.Background(), model.SlotGeneral1, equip.NewValidator(), testutil.Fixtures.Warrior)
	require.ErrorIs(t, err, model.ErrItemNotFound)
	assert.Equal(t, int32(999999), itemAt(t, inv, model.SlotCursor))
	assert.False(t, inv.IsOccupied(model.SlotGeneral1))
}

func TestClick_ConservesItems(t *testing.T) {
	items := []model.Item{
		model.NewItem(testutil.SmallBagID, model.SlotGeneral1, 1),
		model.NewItem(testutil.LargeBagID, model.SlotGeneral4, 1),
		model.NewItem(testutil.SwordID, model.SlotGeneral2, 1),
		model.NewItem(testutil.HelmID, model.SlotHead, 1),
		model.NewItem(testutil.GemID, 262, 1),
		model.NewItem(testutil.ArrowsID, 293, 40),
		model.NewItem(testutil.GreatHelmID, model.SlotGeneral6, 1),
	}
	inv := newInv(items...)

	var targets []model.SlotID
	for s := model.SlotCharm; s <= model.SlotCursor; s++ {
		targets = append(targets, s)
	}
	for s := model.SlotID(262); s < 342; s++ {
		targets = append(targets, s)
	}

	rng := rand.New(rand.NewPCG(7, 11))
	v := equip.NewValidator()
	for range 2000 {
		slot := targets[rng.IntN(len(targets))]
		_, err := inv.Click(context.Background(), slot, v, testutil.Fixtures.Warrior)
		require.NoError(t, err)
		require.Equal(t, len(items), inv.TotalCount())

		seen := make(map[model.SlotID]bool)
		for _, it := range inv.Items() {
			require.False(t, seen[it.Slot], "duplicate slot %s", it.Slot)
			seen[it.Slot] = true
		}
	}
}
