package equip

import (
	"math"

	"github.com/udisondev/invengine/internal/model"
)

// Weights — веса атрибутов предмета для класса.
type Weights struct {
	HP, Mana, AC                 float64
	Str, Sta, Agi, Dex, Int, Wis float64
	Cha                          float64
}

// classWeights — приоритеты статов по классам.
var classWeights = map[model.ClassID]Weights{
	model.ClassWarrior:      {HP: 1.0, AC: 1.0, Str: 0.8, Sta: 1.0, Agi: 0.6, Dex: 0.4},
	model.ClassCleric:       {HP: 0.6, Mana: 1.0, AC: 0.4, Sta: 0.4, Wis: 5.0},
	model.ClassPaladin:      {HP: 0.8, Mana: 0.6, AC: 0.8, Str: 0.6, Sta: 0.8, Wis: 0.8},
	model.ClassRanger:       {HP: 0.6, Mana: 0.4, AC: 0.4, Str: 0.8, Sta: 0.6, Agi: 0.4, Dex: 0.8, Wis: 0.4},
	model.ClassShadowKnight: {HP: 0.8, Mana: 0.6, AC: 0.8, Str: 0.8, Sta: 0.8, Int: 0.6},
	model.ClassDruid:        {HP: 0.4, Mana: 1.0, AC: 0.2, Sta: 0.2, Wis: 5.0},
	model.ClassMonk:         {HP: 0.6, AC: 0.6, Str: 0.8, Sta: 0.8, Agi: 1.0, Dex: 0.4},
	model.ClassBard:         {HP: 0.4, Mana: 0.4, AC: 0.4, Str: 0.2, Sta: 0.6, Agi: 0.4, Dex: 0.8, Cha: 1.0},
	model.ClassRogue:        {HP: 0.4, AC: 0.4, Str: 0.8, Sta: 0.6, Agi: 0.6, Dex: 1.0},
	model.ClassShaman:       {HP: 0.4, Mana: 1.0, AC: 0.2, Sta: 0.4, Wis: 5.0},
	model.ClassNecromancer:  {HP: 0.2, Mana: 1.0, AC: 0.1, Sta: 0.2, Int: 5.0},
	model.ClassWizard:       {HP: 0.2, Mana: 1.0, AC: 0.1, Sta: 0.1, Int: 5.0},
	model.ClassMagician:     {HP: 0.2, Mana: 1.0, AC: 0.1, Sta: 0.1, Int: 5.0},
	model.ClassEnchanter:    {HP: 0.2, Mana: 1.0, AC: 0.1, Sta: 0.1, Int: 5.0, Cha: 2.0},
	model.ClassBeastlord:    {HP: 0.6, Mana: 0.6, AC: 0.4, Str: 0.4, Sta: 0.6, Agi: 0.2, Dex: 0.6, Wis: 0.8},
	model.ClassBerserker:    {HP: 0.8, AC: 0.6, Str: 1.0, Sta: 0.8, Agi: 0.4, Dex: 0.6},
}

// Ratio weight of weapon damage/delay versus attributes.
const (
	ratioWeightMelee  = 0.9
	ratioWeightHybrid = 0.75
	ratioWeightCaster = 0.05

	procBonus  = 10
	clickBonus = 5
)

// WeightsFor returns the attribute weights for class (zero weights if unknown).
func WeightsFor(class model.ClassID) Weights {
	return classWeights[class]
}

// Score оценивает полезность предмета для класса (>= 0).
//
// Weapons score by damage per second; everything scores by class-weighted
// attributes. Melee classes lean on the weapon ratio, casters on attributes.
// Required level scales the result up by 1% per level.
func Score(tpl *model.ItemTemplate, class model.ClassID) int {
	if tpl == nil {
		return 0
	}

	var ratio float64
	if tpl.Delay > 0 && tpl.Damage > 0 {
		dps := float64(tpl.Damage) / (float64(tpl.Delay) / 100)
		ratio = dps * 2
	}

	w := WeightsFor(class)
	attr := math.Max(0, float64(tpl.HP))*w.HP +
		math.Max(0, float64(tpl.Mana))*w.Mana +
		math.Max(0, float64(tpl.AC))*w.AC +
		float64(tpl.Str)*w.Str +
		float64(tpl.Sta)*w.Sta +
		float64(tpl.Agi)*w.Agi +
		float64(tpl.Dex)*w.Dex +
		float64(tpl.Int)*w.Int +
		float64(tpl.Wis)*w.Wis +
		float64(tpl.Cha)*w.Cha

	if tpl.ProcEffect != 0 {
		attr += procBonus
	}
	if tpl.ClickEffect != 0 {
		attr += clickBonus
	}

	rw := ratioWeightCaster
	switch {
	case class.IsMelee():
		rw = ratioWeightMelee
	case class.IsHybrid():
		rw = ratioWeightHybrid
	}

	score := ratio*rw + attr*(1-rw)
	if tpl.ReqLevel > 0 {
		score *= 1 + float64(tpl.ReqLevel)/100
	}

	return max(0, int(math.Round(score)))
}
