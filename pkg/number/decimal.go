package number

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Decimal human readable value, 1e18 raw units is 1
func (w Wad) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(w.v.ToBig(), -WadDecimals)
}

// FromDecimal converts a human readable value into a wad, truncating past 18 decimals
func FromDecimal(d decimal.Decimal) (Wad, error) {
	if d.IsNegative() {
		return Wad{}, fmt.Errorf("number: negative value %s", d)
	}

	raw := d.Shift(WadDecimals).Truncate(0).BigInt()
	v, overflow := uint256.FromBig(raw)
	if overflow {
		return Wad{}, ErrOverflow
	}

	return NewWad(v), nil
}

// ParseWad parse a human readable value like "1.02"
func ParseWad(s string) (Wad, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Wad{}, fmt.Errorf("number: parse %q: %w", s, err)
	}

	return FromDecimal(d)
}

// MustParseWad like ParseWad but panics
func MustParseWad(s string) Wad {
	w, err := ParseWad(s)
	if err != nil {
		panic(err)
	}

	return w
}
