package model

import "fmt"

// Курсы номиналов в меди.
const (
	CopperPerSilver   = 10
	CopperPerGold     = 100
	CopperPerPlatinum = 1000
)

// Ledger — четыре неотрицательных номинала валюты.
type Ledger struct {
	Platinum int64 `yaml:"platinum"`
	Gold     int64 `yaml:"gold"`
	Silver   int64 `yaml:"silver"`
	Copper   int64 `yaml:"copper"`
}

// Normalize splits a base-copper amount into denominations.
// Negative input is treated as zero.
//
// Invariant: p*1000 + g*100 + s*10 + c == totalCopper.
func Normalize(totalCopper int64) Ledger {
	if totalCopper < 0 {
		totalCopper = 0
	}
	return Ledger{
		Platinum: totalCopper / CopperPerPlatinum,
		Gold:     (totalCopper % CopperPerPlatinum) / CopperPerGold,
		Silver:   (totalCopper % CopperPerGold) / CopperPerSilver,
		Copper:   totalCopper % CopperPerSilver,
	}
}

// TotalCopper returns the ledger's value in base copper.
func (l Ledger) TotalCopper() int64 {
	return l.Platinum*CopperPerPlatinum + l.Gold*CopperPerGold + l.Silver*CopperPerSilver + l.Copper
}

// IsZero reports whether every denomination is zero.
func (l Ledger) IsZero() bool {
	return l == Ledger{}
}

// String formats the ledger as "1p 2g 3s 4c".
func (l Ledger) String() string {
	return fmt.Sprintf("%dp %dg %ds %dc", l.Platinum, l.Gold, l.Silver, l.Copper)
}

// CarryMode selects how Merge resolves denomination overflow.
type CarryMode int

const (
	// CarryPartial carries copper overflow into silver only; silver, gold and
	// platinum are summed without further carry. Matches ledgers already stored
	// by older clients.
	CarryPartial CarryMode = iota
	// CarryFull renormalizes the whole ledger through base copper.
	CarryFull
)

// ParseCarryMode maps a config value to a CarryMode.
func ParseCarryMode(s string) (CarryMode, error) {
	switch s {
	case "", "partial":
		return CarryPartial, nil
	case "full":
		return CarryFull, nil
	default:
		return CarryPartial, fmt.Errorf("unknown carry mode %q (want partial|full)", s)
	}
}

// String returns the config spelling of the mode.
func (m CarryMode) String() string {
	if m == CarryFull {
		return "full"
	}
	return "partial"
}

// Merge adds delta to existing denomination-wise and resolves overflow per mode.
// Neither input is modified.
func Merge(existing, delta Ledger, mode CarryMode) Ledger {
	if mode == CarryFull {
		return Normalize(existing.TotalCopper() + delta.TotalCopper())
	}

	out := Ledger{
		Platinum: existing.Platinum + delta.Platinum,
		Gold:     existing.Gold + delta.Gold,
		Silver:   existing.Silver + delta.Silver,
		Copper:   existing.Copper + delta.Copper,
	}
	out.Silver += out.Copper / CopperPerSilver
	out.Copper %= CopperPerSilver
	return out
}

// Spend subtracts cost from the ledger, breaking larger coins as needed.
// Returns an error and leaves the ledger unchanged if funds are insufficient.
func (l *Ledger) Spend(cost int64) error {
	if cost < 0 {
		return fmt.Errorf("cost cannot be negative, got %d", cost)
	}
	have := l.TotalCopper()
	if have < cost {
		return fmt.Errorf("not enough money: have %s, need %s", *l, Normalize(cost))
	}
	*l = Normalize(have - cost)
	return nil
}

// PurseLocation identifies where a ledger is held.
type PurseLocation int32

const (
	PurseCarried PurseLocation = iota
	PurseBank
	PurseCursor
)

// String returns human-readable purse location name.
func (p PurseLocation) String() string {
	switch p {
	case PurseCarried:
		return "Carried"
	case PurseBank:
		return "Bank"
	case PurseCursor:
		return "Cursor"
	default:
		return "Unknown"
	}
}

// Purse holds the character's ledgers per location. Only Carried has behavior
// in the engine; Bank and Cursor are stored and persisted as-is.
type Purse struct {
	Carried Ledger `yaml:"carried"`
	Bank    Ledger `yaml:"bank"`
	Cursor  Ledger `yaml:"cursor"`
}

// At returns a pointer to the ledger for loc (nil for unknown locations).
func (p *Purse) At(loc PurseLocation) *Ledger {
	switch loc {
	case PurseCarried:
		return &p.Carried
	case PurseBank:
		return &p.Bank
	case PurseCursor:
		return &p.Cursor
	default:
		return nil
	}
}
