// Package equip implements equip-slot restrictions and item scoring used by
// transfers and loot auto-equip.
//
// Restrictions are bitmasks on the item template:
//   - Slots: bit N allows equip slot N
//   - Classes: bit (classID-1)
//   - Races: model.RaceID.Bit()
package equip

import (
	"github.com/udisondev/invengine/internal/model"
)

// Validator — стандартная проверка по битовым маскам шаблона.
// Zero value is ready to use.
type Validator struct {
	// IgnoreClassRace skips class/race checks (slot bits still apply).
	IgnoreClassRace bool
}

// NewValidator creates a bitmask validator.
func NewValidator() *Validator {
	return &Validator{}
}

// IsAllowed reports whether tpl may be placed into slot by who.
// Non-equip slots are always allowed.
func (v *Validator) IsAllowed(tpl *model.ItemTemplate, slot model.SlotID, who model.Wearer) bool {
	if !model.IsEquipSlot(slot) {
		return true
	}
	if tpl == nil || tpl.Class != model.ItemClassCommon {
		return false
	}
	if tpl.Slots&model.SlotBit(slot) == 0 {
		return false
	}
	if v.IgnoreClassRace {
		return true
	}
	return ClassAllowed(tpl, who.Class) && RaceAllowed(tpl, who.Race)
}

// ClassAllowed проверяет маску классов шаблона.
func ClassAllowed(tpl *model.ItemTemplate, class model.ClassID) bool {
	bit := class.Bit()
	return bit != 0 && tpl.Classes&bit != 0
}

// RaceAllowed проверяет маску рас шаблона.
func RaceAllowed(tpl *model.ItemTemplate, race model.RaceID) bool {
	bit := race.Bit()
	return bit != 0 && tpl.Races&bit != 0
}

// CanWear reports whether who may wear tpl in at least one of its slots.
func CanWear(v model.EquipValidator, tpl *model.ItemTemplate, who model.Wearer) bool {
	if tpl == nil || !tpl.IsEquippable() {
		return false
	}
	for _, s := range tpl.EquipSlots() {
		if v.IsAllowed(tpl, s, who) {
			return true
		}
	}
	return false
}

// AllowAll accepts every placement. Used when restrictions are enforced elsewhere.
type AllowAll struct{}

// IsAllowed always returns true.
func (AllowAll) IsAllowed(*model.ItemTemplate, model.SlotID, model.Wearer) bool { return true }
