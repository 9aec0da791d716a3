package model

// ClassID — идентификатор класса персонажа (1..16).
type ClassID int32

const (
	ClassWarrior ClassID = iota + 1
	ClassCleric
	ClassPaladin
	ClassRanger
	ClassShadowKnight
	ClassDruid
	ClassMonk
	ClassBard
	ClassRogue
	ClassShaman
	ClassNecromancer
	ClassWizard
	ClassMagician
	ClassEnchanter
	ClassBeastlord
	ClassBerserker
)

// Restriction masks that allow every class / race.
const (
	AllClasses uint32 = 65535
	AllRaces   uint32 = 65535
)

// Bit returns the class bit used by item class restrictions (0 for unknown ids).
func (c ClassID) Bit() uint32 {
	if c < ClassWarrior || c > ClassBerserker {
		return 0
	}
	return 1 << uint32(c-1)
}

// IsMelee reports pure melee classes.
func (c ClassID) IsMelee() bool {
	switch c {
	case ClassWarrior, ClassMonk, ClassRogue, ClassBerserker:
		return true
	}
	return false
}

// IsHybrid reports melee/caster hybrids.
func (c ClassID) IsHybrid() bool {
	switch c {
	case ClassPaladin, ClassRanger, ClassShadowKnight, ClassBard, ClassBeastlord:
		return true
	}
	return false
}

// RaceID — идентификатор расы персонажа.
type RaceID int32

const (
	RaceHuman     RaceID = 1
	RaceBarbarian RaceID = 2
	RaceErudite   RaceID = 3
	RaceWoodElf   RaceID = 4
	RaceHighElf   RaceID = 5
	RaceDarkElf   RaceID = 6
	RaceHalfElf   RaceID = 7
	RaceDwarf     RaceID = 8
	RaceTroll     RaceID = 9
	RaceOgre      RaceID = 10
	RaceHalfling  RaceID = 11
	RaceGnome     RaceID = 12
	RaceIksar     RaceID = 128
	RaceVahShir   RaceID = 130
	RaceFroglok   RaceID = 330
	RaceDrakkin   RaceID = 522
)

// raceBits — playable races outside 1..12 have sparse ids.
var raceBits = map[RaceID]uint32{
	RaceIksar:   1 << 12,
	RaceVahShir: 1 << 13,
	RaceFroglok: 1 << 14,
	RaceDrakkin: 1 << 15,
}

// Bit returns the race bit used by item race restrictions (0 for non-playable races).
func (r RaceID) Bit() uint32 {
	if r >= RaceHuman && r <= RaceGnome {
		return 1 << uint32(r-1)
	}
	return raceBits[r]
}

// Wearer — кто пытается надеть предмет: класс, раса и уровень.
type Wearer struct {
	Class ClassID `yaml:"class"`
	Race  RaceID  `yaml:"race"`
	Level int32   `yaml:"level"`
}
