package world

import "math/big"

// Balance is the player's currency. It is only mutated by credit payouts
// and placement costs.
type Balance struct {
	v big.Int
}

func NewBalance(start int64) *Balance {
	b := &Balance{}
	b.v.SetInt64(start)
	return b
}

// Value returns a copy of the current amount.
func (b *Balance) Value() *big.Int {
	return new(big.Int).Set(&b.v)
}

func (b *Balance) Add(amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	b.v.Add(&b.v, amount)
}

func (b *Balance) CanAfford(cost int64) bool {
	return b.v.Cmp(big.NewInt(cost)) >= 0
}

// Spend deducts cost if the balance covers it.
func (b *Balance) Spend(cost int64) bool {
	if !b.CanAfford(cost) {
		return false
	}
	b.v.Sub(&b.v, big.NewInt(cost))
	return true
}

func (b *Balance) String() string {
	return b.v.String()
}
