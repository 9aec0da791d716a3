package equip

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/invengine/internal/model"
)

var testSword = model.ItemTemplate{
	ID: 1, Name: "Sword", Class: model.ItemClassCommon, NoDrop: 1, NoRent: 1,
	Slots:   model.SlotBit(model.SlotPrimary) | model.SlotBit(model.SlotSecondary),
	Classes: model.ClassWarrior.Bit() | model.ClassPaladin.Bit(),
	Races:   model.RaceHuman.Bit() | model.RaceIksar.Bit(),
	Damage:  8, Delay: 30,
}

func TestValidator_IsAllowed(t *testing.T) {
	v := NewValidator()
	human := model.Wearer{Class: model.ClassWarrior, Race: model.RaceHuman}

	tests := []struct {
		name string
		tpl  model.ItemTemplate
		slot model.SlotID
		who  model.Wearer
		want bool
	}{
		{"primary ok", testSword, model.SlotPrimary, human, true},
		{"secondary ok", testSword, model.SlotSecondary, human, true},
		{"wrong slot", testSword, model.SlotHead, human, false},
		{"wrong class", testSword, model.SlotPrimary, model.Wearer{Class: model.ClassWizard, Race: model.RaceHuman}, false},
		{"wrong race", testSword, model.SlotPrimary, model.Wearer{Class: model.ClassWarrior, Race: model.RaceGnome}, false},
		{"sparse race id", testSword, model.SlotPrimary, model.Wearer{Class: model.ClassPaladin, Race: model.RaceIksar}, true},
		{"unknown class", testSword, model.SlotPrimary, model.Wearer{Class: 99, Race: model.RaceHuman}, false},
		{"general slot always ok", testSword, model.SlotGeneral1, model.Wearer{Class: model.ClassWizard}, true},
		{"container never worn", model.ItemTemplate{Class: model.ItemClassContainer, Slots: model.SlotBit(model.SlotBack), Classes: model.AllClasses, Races: model.AllRaces}, model.SlotBack, human, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.IsAllowed(&tt.tpl, tt.slot, tt.who))
		})
	}
}

func TestValidator_IgnoreClassRace(t *testing.T) {
	v := &Validator{IgnoreClassRace: true}
	gnomeWizard := model.Wearer{Class: model.ClassWizard, Race: model.RaceGnome}

	assert.True(t, v.IsAllowed(&testSword, model.SlotPrimary, gnomeWizard))
	assert.False(t, v.IsAllowed(&testSword, model.SlotHead, gnomeWizard), "slot bits still apply")
}

func TestCanWear(t *testing.T) {
	v := NewValidator()
	assert.True(t, CanWear(v, &testSword, model.Wearer{Class: model.ClassWarrior, Race: model.RaceHuman}))
	assert.False(t, CanWear(v, &testSword, model.Wearer{Class: model.ClassWizard, Race: model.RaceHuman}))

	gem := model.ItemTemplate{Class: model.ItemClassCommon, Classes: model.AllClasses, Races: model.AllRaces}
	assert.False(t, CanWear(v, &gem, model.Wearer{Class: model.ClassWarrior, Race: model.RaceHuman}), "no slot bits")
	assert.False(t, CanWear(v, nil, model.Wearer{}))
}

func TestAllowAll(t *testing.T) {
	assert.True(t, AllowAll{}.IsAllowed(nil, model.SlotHead, model.Wearer{}))
}
