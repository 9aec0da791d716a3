package testutil

import (
	"github.com/udisondev/invengine/internal/model"
)

// Template ids used by fixtures.
const (
	SwordID      int32 = 1001
	ShieldID     int32 = 1002
	HelmID       int32 = 1003
	GreatHelmID  int32 = 1004
	RobeID       int32 = 1005
	SmallBagID   int32 = 2001
	LargeBagID   int32 = 2002
	ArrowsID     int32 = 3001
	GemID        int32 = 3002
	BoneChipsID  int32 = 3003
	RentedRingID int32 = 3004
)

// Fixtures содержит шаблоны предметов для тестов.
// Цены и флаги подобраны под сценарии ликвидации и лута.
var Fixtures = struct {
	Sword      model.ItemTemplate
	Shield     model.ItemTemplate // no-drop
	Helm       model.ItemTemplate
	GreatHelm  model.ItemTemplate // strictly better than Helm
	Robe       model.ItemTemplate // casters only
	SmallBag   model.ItemTemplate // 8 bag slots
	LargeBag   model.ItemTemplate // 10 bag slots
	Arrows     model.ItemTemplate // stackable, fractional price
	Gem        model.ItemTemplate
	BoneChips  model.ItemTemplate // stackable junk
	RentedRing model.ItemTemplate // no-rent
	Warrior    model.Wearer
	Wizard     model.Wearer
}{
	Sword: model.ItemTemplate{
		ID: SwordID, Name: "Rusty Short Sword", Class: model.ItemClassCommon, Type: model.ItemType1HSlash,
		Weight: 80, Price: 1234, NoDrop: 1, NoRent: 1,
		Slots:   model.SlotBit(model.SlotPrimary) | model.SlotBit(model.SlotSecondary),
		Classes: model.ClassWarrior.Bit() | model.ClassRogue.Bit(), Races: model.AllRaces,
		Damage: 6, Delay: 30,
	},
	Shield: model.ItemTemplate{
		ID: ShieldID, Name: "Bone Shield", Class: model.ItemClassCommon, Type: model.ItemTypeShield,
		Weight: 100, Price: 500, NoDrop: 0, NoRent: 1,
		Slots: model.SlotBit(model.SlotSecondary), Classes: model.AllClasses, Races: model.AllRaces,
		AC: 10,
	},
	Helm: model.ItemTemplate{
		ID: HelmID, Name: "Leather Cap", Class: model.ItemClassCommon, Type: model.ItemTypeArmor,
		Weight: 25, Price: 40, NoDrop: 1, NoRent: 1,
		Slots: model.SlotBit(model.SlotHead), Classes: model.AllClasses, Races: model.AllRaces,
		AC: 2,
	},
	GreatHelm: model.ItemTemplate{
		ID: GreatHelmID, Name: "Bronze Helm", Class: model.ItemClassCommon, Type: model.ItemTypeArmor,
		Weight: 45, Price: 800, NoDrop: 1, NoRent: 1,
		Slots: model.SlotBit(model.SlotHead), Classes: model.AllClasses, Races: model.AllRaces,
		AC: 12, HP: 20, Sta: 3,
	},
	Robe: model.ItemTemplate{
		ID: RobeID, Name: "Silken Robe", Class: model.ItemClassCommon, Type: model.ItemTypeArmor,
		Weight: 20, Price: 300, NoDrop: 1, NoRent: 1,
		Slots:   model.SlotBit(model.SlotChest),
		Classes: model.ClassWizard.Bit() | model.ClassMagician.Bit() | model.ClassEnchanter.Bit() | model.ClassNecromancer.Bit(),
		Races:   model.AllRaces,
		AC:      3, Mana: 15, Int: 2,
	},
	SmallBag: model.ItemTemplate{
		ID: SmallBagID, Name: "Small Bag", Class: model.ItemClassContainer,
		Weight: 5, Price: 300, NoDrop: 1, NoRent: 1, BagSlots: 8,
	},
	LargeBag: model.ItemTemplate{
		ID: LargeBagID, Name: "Large Sewn Bag", Class: model.ItemClassContainer,
		Weight: 15, Price: 1500, NoDrop: 1, NoRent: 1, BagSlots: 10,
	},
	Arrows: model.ItemTemplate{
		ID: ArrowsID, Name: "Field Point Arrow", Class: model.ItemClassCommon, Type: model.ItemTypeArchery,
		Weight: 1, Price: 2.7, StackSize: 100, NoDrop: 1, NoRent: 1,
		Slots: model.SlotBit(model.SlotAmmo), Classes: model.AllClasses, Races: model.AllRaces,
	},
	Gem: model.ItemTemplate{
		ID: GemID, Name: "Bloodstone", Class: model.ItemClassCommon, Type: model.ItemTypeMisc,
		Weight: 1, Price: 99.9, NoDrop: 1, NoRent: 1,
	},
	BoneChips: model.ItemTemplate{
		ID: BoneChipsID, Name: "Bone Chips", Class: model.ItemClassCommon, Type: model.ItemTypeMisc,
		Weight: 2, Price: 3, StackSize: 20, NoDrop: 1, NoRent: 1,
	},
	RentedRing: model.ItemTemplate{
		ID: RentedRingID, Name: "Temporary Ring", Class: model.ItemClassCommon, Type: model.ItemTypeMisc,
		Weight: 1, Price: 100, NoDrop: 1, NoRent: 0,
		Slots: model.SlotBit(model.SlotFinger1) | model.SlotBit(model.SlotFinger2), Classes: model.AllClasses, Races: model.AllRaces,
	},
	Warrior: model.Wearer{Class: model.ClassWarrior, Race: model.RaceHuman, Level: 10},
	Wizard:  model.Wearer{Class: model.ClassWizard, Race: model.RaceGnome, Level: 10},
}

// AllTemplates returns every fixture template.
func AllTemplates() []model.ItemTemplate {
	f := Fixtures
	return []model.ItemTemplate{
		f.Sword, f.Shield, f.Helm, f.GreatHelm, f.Robe,
		f.SmallBag, f.LargeBag, f.Arrows, f.Gem, f.BoneChips, f.RentedRing,
	}
}

// FillGeneral returns items occupying every general slot with itemID.
func FillGeneral(itemID int32) []model.Item {
	var out []model.Item
	for _, s := range model.GeneralSlots() {
		out = append(out, model.NewItem(itemID, s, 1))
	}
	return out
}
