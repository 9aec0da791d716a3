package loot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/invengine/internal/data"
	"github.com/udisondev/invengine/internal/game/loot"
	"github.com/udisondev/invengine/internal/model"
	"github.com/udisondev/invengine/internal/notify"
	"github.com/udisondev/invengine/internal/testutil"
)

type fixture struct {
	cat   *testutil.MemCatalog
	sink  *testutil.RecordingSink
	proc  *loot.Processor
	inv   *model.Inventory
	purse *model.Purse
}

func newFixture(opts loot.Options, items ...model.Item) *fixture {
	cat := testutil.FixtureCatalog()
	sink := &testutil.RecordingSink{}
	return &fixture{
		cat:   cat,
		sink:  sink,
		proc:  loot.NewProcessor(cat, nil, sink, opts),
		inv:   model.NewInventory(1, cat, items...),
		purse: &model.Purse{},
	}
}

func (f *fixture) grant(t *testing.T, who model.Wearer, grants ...loot.Grant) loot.Outcome {
	t.Helper()
	ctx := context.Background()
	resolved, err := f.proc.Resolve(ctx, grants)
	require.NoError(t, err)
	return f.proc.Apply(ctx, loot.Target{Inventory: f.inv, Purse: f.purse, Wearer: who}, grants, resolved)
}

func itemID(t *testing.T, inv *model.Inventory, slot model.SlotID) int32 {
	t.Helper()
	it, ok := inv.Item(slot)
	require.True(t, ok, "slot %s is empty", slot)
	return it.ItemID
}

func charges(t *testing.T, inv *model.Inventory, slot model.SlotID) int32 {
	t.Helper()
	it, ok := inv.Item(slot)
	require.True(t, ok, "slot %s is empty", slot)
	return it.Charges
}

func TestApply_AutoEquipIntoEmptySlots(t *testing.T) {
	f := newFixture(loot.Options{AutoEquip: true})

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.SwordID, Quantity: 3})

	assert.Equal(t, []model.SlotID{model.SlotPrimary, model.SlotSecondary}, out.Equipped)
	assert.Equal(t, []model.SlotID{model.SlotGeneral1}, out.Placed, "third sword is no upgrade")
	assert.Equal(t, testutil.SwordID, itemID(t, f.inv, model.SlotPrimary))
	assert.Equal(t, testutil.SwordID, itemID(t, f.inv, model.SlotSecondary))
	assert.Empty(t, f.sink.Messages())
}

func TestApply_UpgradeMovesOldItemToGeneral(t *testing.T) {
	f := newFixture(loot.Options{AutoEquip: true},
		model.NewItem(testutil.HelmID, model.SlotHead, 1),
	)

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.GreatHelmID})

	assert.Equal(t, []model.SlotID{model.SlotHead}, out.Equipped)
	assert.Equal(t, testutil.GreatHelmID, itemID(t, f.inv, model.SlotHead))
	assert.Equal(t, testutil.HelmID, itemID(t, f.inv, model.SlotGeneral1))
	assert.Empty(t, out.Sold)
	assert.Empty(t, out.Dropped)
}

func TestApply_DowngradeGoesToGeneral(t *testing.T) {
	f := newFixture(loot.Options{AutoEquip: true},
		model.NewItem(testutil.GreatHelmID, model.SlotHead, 1),
	)

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.HelmID})

	assert.Empty(t, out.Equipped)
	assert.Equal(t, []model.SlotID{model.SlotGeneral1}, out.Placed)
	assert.Equal(t, testutil.GreatHelmID, itemID(t, f.inv, model.SlotHead))
}

func TestApply_UpgradeOnFullInventorySellsOldItem(t *testing.T) {
	items := append(testutil.FillGeneral(testutil.GemID), model.NewItem(testutil.HelmID, model.SlotHead, 1))
	f := newFixture(loot.Options{AutoEquip: true, AutoSell: true}, items...)

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.GreatHelmID})

	assert.Equal(t, testutil.GreatHelmID, itemID(t, f.inv, model.SlotHead))
	assert.Equal(t, []int32{testutil.HelmID}, out.Sold)
	assert.Equal(t, int64(40), out.Credited.TotalCopper())
	assert.Equal(t, int64(40), f.purse.Carried.TotalCopper())
	assert.Equal(t, []string{"Inventory full, sold Leather Cap for " + model.Normalize(40).String()}, f.sink.Texts())
}

func TestApply_FullInventoryDropsWithoutAutoSell(t *testing.T) {
	f := newFixture(loot.Options{AutoEquip: true}, testutil.FillGeneral(testutil.GemID)...)

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.GemID})

	assert.Equal(t, []int32{testutil.GemID}, out.Dropped)
	assert.True(t, out.Credited.IsZero())
	msgs := f.sink.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.KindWarning, msgs[0].Kind)
	assert.Equal(t, "Inventory full, item dropped: Bloodstone", msgs[0].Text)
}

func TestApply_FullInventorySellsStackLeftover(t *testing.T) {
	f := newFixture(loot.Options{AutoSell: true}, testutil.FillGeneral(testutil.GemID)...)

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.ArrowsID, Quantity: 50})

	// floor(2.7) * 50
	assert.Equal(t, int64(100), out.Credited.TotalCopper())
	assert.Equal(t, []int32{testutil.ArrowsID}, out.Sold)
}

func TestApply_NoDropOverflowIsDroppedEvenWithAutoSell(t *testing.T) {
	f := newFixture(loot.Options{AutoSell: true}, testutil.FillGeneral(testutil.GemID)...)

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.ShieldID})

	assert.Equal(t, []int32{testutil.ShieldID}, out.Dropped)
	assert.Empty(t, out.Sold)
}

func TestApply_UnresolvedGrantSkipped(t *testing.T) {
	f := newFixture(loot.Options{AutoEquip: true})

	out := f.grant(t, testutil.Fixtures.Warrior,
		loot.Grant{ItemID: 999999},
		loot.Grant{ItemID: testutil.GemID},
	)

	assert.Equal(t, []int32{999999}, out.Skipped)
	assert.Equal(t, []model.SlotID{model.SlotGeneral1}, out.Placed)
}

func TestApply_SlowTemplateTreatedAsMiss(t *testing.T) {
	cat := testutil.FixtureCatalog()
	cat.SlowIDs = map[int32]time.Duration{testutil.GemID: time.Second}
	proc := loot.NewProcessor(cat, nil, nil, loot.Options{
		Resolve: data.ResolveOptions{Timeout: 20 * time.Millisecond},
	})
	inv := model.NewInventory(1, cat)
	grants := []loot.Grant{{ItemID: testutil.GemID}, {ItemID: testutil.BoneChipsID, Quantity: 5}}

	resolved, err := proc.Resolve(context.Background(), grants)
	require.NoError(t, err)
	out := proc.Apply(context.Background(), loot.Target{Inventory: inv, Wearer: testutil.Fixtures.Warrior}, grants, resolved)

	assert.Equal(t, []int32{testutil.GemID}, out.Skipped)
	assert.Equal(t, int32(5), charges(t, inv, model.SlotGeneral1))
}

func TestApply_SlowOccupantLookupIsBounded(t *testing.T) {
	cat := testutil.FixtureCatalog()
	cat.SlowIDs = map[int32]time.Duration{testutil.HelmID: 2 * time.Second}
	proc := loot.NewProcessor(cat, nil, nil, loot.Options{
		AutoEquip: true,
		Resolve:   data.ResolveOptions{Timeout: 30 * time.Millisecond},
	})
	inv := model.NewInventory(1, cat, model.NewItem(testutil.HelmID, model.SlotHead, 1))
	grants := []loot.Grant{{ItemID: testutil.GreatHelmID}}

	start := time.Now()
	resolved, err := proc.Resolve(context.Background(), grants)
	require.NoError(t, err)
	out := proc.Apply(context.Background(), loot.Target{Inventory: inv, Wearer: testutil.Fixtures.Warrior}, grants, resolved)

	assert.Less(t, time.Since(start), time.Second)
	// the occupant could not be scored in time, so no swap
	assert.Empty(t, out.Equipped)
	assert.Equal(t, testutil.HelmID, itemID(t, inv, model.SlotHead))
	assert.Equal(t, testutil.GreatHelmID, itemID(t, inv, model.SlotGeneral1))
}

func TestApply_StackableEquipFillsSlot(t *testing.T) {
	f := newFixture(loot.Options{AutoEquip: true})

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.ArrowsID, Quantity: 150})

	assert.Equal(t, []model.SlotID{model.SlotAmmo}, out.Equipped)
	assert.Equal(t, int32(100), charges(t, f.inv, model.SlotAmmo))
	assert.Equal(t, int32(50), charges(t, f.inv, model.SlotGeneral1))
	assert.False(t, f.inv.IsOccupied(model.SlotGeneral2))
}

func TestApply_WrongClassGoesToGeneral(t *testing.T) {
	f := newFixture(loot.Options{AutoEquip: true})

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.RobeID})

	assert.Empty(t, out.Equipped)
	assert.Equal(t, testutil.RobeID, itemID(t, f.inv, model.SlotGeneral1))
	assert.False(t, f.inv.IsOccupied(model.SlotChest))
}

func TestApply_AutoEquipDisabled(t *testing.T) {
	f := newFixture(loot.Options{})

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.SwordID})

	assert.Empty(t, out.Equipped)
	assert.Equal(t, []model.SlotID{model.SlotGeneral1}, out.Placed)
}

func TestApply_StacksTopUpExisting(t *testing.T) {
	f := newFixture(loot.Options{}, model.NewItem(testutil.BoneChipsID, model.SlotGeneral1, 15))

	out := f.grant(t, testutil.Fixtures.Warrior, loot.Grant{ItemID: testutil.BoneChipsID, Quantity: 10})

	assert.Equal(t, int32(20), charges(t, f.inv, model.SlotGeneral1))
	assert.Equal(t, int32(5), charges(t, f.inv, model.SlotGeneral2))
	assert.Contains(t, out.Placed, model.SlotGeneral2)
}

func TestApplyCurrency(t *testing.T) {
	purse := &model.Purse{}
	purse.Bank = model.Ledger{Gold: 9}

	err := loot.ApplyCurrency(purse, loot.CurrencyDelta{
		Location: model.PurseBank,
		Amount:   model.Ledger{Gold: 3},
	}, model.CarryPartial)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), purse.Bank.TotalCopper())
	assert.True(t, purse.Carried.IsZero())

	err = loot.ApplyCurrency(purse, loot.CurrencyDelta{Location: model.PurseLocation(42)}, model.CarryPartial)
	assert.Error(t, err)
}
