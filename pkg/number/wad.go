package number

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/spf13/cast"
)

// WadDecimals decimals of the canonical price unit
const WadDecimals = 18

// maxDecimals 10^77 is the largest power of ten that fits in 256 bits
const maxDecimals = 77

var (
	// ErrOverflow result does not fit in 256 bits
	ErrOverflow = errors.New("number: uint256 overflow")
	// ErrDivisionByZero division by zero
	ErrDivisionByZero = errors.New("number: division by zero")

	wadUnit = uint256.NewInt(1_000_000_000_000_000_000)
)

// Wad unsigned fixed point number with 18 decimals
type Wad struct {
	v uint256.Int
}

// Zero zero wad
func Zero() Wad {
	return Wad{}
}

// One 1.0 in wad
func One() Wad {
	return Wad{v: *wadUnit}
}

// NewWad wrap raw 18-decimal units
func NewWad(raw *uint256.Int) Wad {
	var w Wad
	if raw != nil {
		w.v.Set(raw)
	}
	return w
}

// WadFromUint64 wrap raw 18-decimal units
func WadFromUint64(raw uint64) Wad {
	var w Wad
	w.v.SetUint64(raw)
	return w
}

// Int returns a copy of the raw units
func (w Wad) Int() *uint256.Int {
	return new(uint256.Int).Set(&w.v)
}

func (w Wad) IsZero() bool {
	return w.v.IsZero()
}

func (w Wad) Cmp(o Wad) int {
	return w.v.Cmp(&o.v)
}

func (w Wad) Equal(o Wad) bool {
	return w.v.Eq(&o.v)
}

func (w Wad) LessThan(o Wad) bool {
	return w.v.Lt(&o.v)
}

func (w Wad) GreaterThan(o Wad) bool {
	return w.v.Gt(&o.v)
}

// String raw units as a base-10 integer
func (w Wad) String() string {
	return w.v.Dec()
}

// MarshalJSON encodes raw units as a json string, 256-bit values do not fit a json number
func (w Wad) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(w.String())), nil
}

func (w *Wad) UnmarshalJSON(b []byte) error {
	s := string(b)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}

	v, err := ParseRaw(s)
	if err != nil {
		return err
	}

	*w = v
	return nil
}

// Value sql

func (w Wad) Value() (driver.Value, error) {
	return w.String(), nil
}

func (w *Wad) Scan(src interface{}) error {
	s := cast.ToString(src)
	if s == "" {
		*w = Zero()
		return nil
	}

	v, err := ParseRaw(s)
	if err != nil {
		return err
	}

	*w = v
	return nil
}

// ParseRaw parse raw 18-decimal units from a base-10 integer
func ParseRaw(s string) (Wad, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return Wad{}, fmt.Errorf("number: parse wad %q: %w", s, err)
	}

	return NewWad(v), nil
}

// Pow10 returns 10^n
func Pow10(n uint8) (*uint256.Int, error) {
	if n > maxDecimals {
		return nil, ErrOverflow
	}

	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(n))), nil
}

// ToWad scales raw from the given decimals to 18 decimals.
// Down-scaling truncates toward zero, the sub-unit remainder is dropped.
func ToWad(raw *uint256.Int, decimals uint8) (Wad, error) {
	switch {
	case decimals == WadDecimals:
		return NewWad(raw), nil
	case decimals < WadDecimals:
		factor, _ := Pow10(WadDecimals - decimals)
		v, overflow := new(uint256.Int).MulOverflow(raw, factor)
		if overflow {
			return Wad{}, ErrOverflow
		}
		return NewWad(v), nil
	default:
		factor, err := Pow10(decimals - WadDecimals)
		if err != nil {
			// raw < 2^256 < 10^(d-18), nothing survives the division
			return Zero(), nil
		}
		return NewWad(new(uint256.Int).Div(raw, factor)), nil
	}
}

// FromWad scales an 18-decimal value back to the given decimals, truncating
func FromWad(w Wad, decimals uint8) (*uint256.Int, error) {
	switch {
	case decimals == WadDecimals:
		return w.Int(), nil
	case decimals < WadDecimals:
		factor, _ := Pow10(WadDecimals - decimals)
		return new(uint256.Int).Div(&w.v, factor), nil
	default:
		factor, err := Pow10(decimals - WadDecimals)
		if err != nil {
			return nil, err
		}
		v, overflow := new(uint256.Int).MulOverflow(&w.v, factor)
		if overflow {
			return nil, ErrOverflow
		}
		return v, nil
	}
}

// MulDiv computes x*y/d with a 512-bit intermediate
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, ErrDivisionByZero
	}

	v, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, ErrOverflow
	}

	return v, nil
}

// MulWad a*b/1e18
func MulWad(a, b Wad) (Wad, error) {
	v, err := MulDiv(&a.v, &b.v, wadUnit)
	if err != nil {
		return Wad{}, err
	}

	return NewWad(v), nil
}

// DivWad a*1e18/b
func DivWad(a, b Wad) (Wad, error) {
	v, err := MulDiv(&a.v, wadUnit, &b.v)
	if err != nil {
		return Wad{}, err
	}

	return NewWad(v), nil
}

// Add a+b
func Add(a, b Wad) (Wad, error) {
	v, overflow := new(uint256.Int).AddOverflow(&a.v, &b.v)
	if overflow {
		return Wad{}, ErrOverflow
	}

	return NewWad(v), nil
}

// Sub a-b, floored at zero
func Sub(a, b Wad) Wad {
	if a.LessThan(b) {
		return Zero()
	}

	return NewWad(new(uint256.Int).Sub(&a.v, &b.v))
}

// ValueOf values amount native units of a token priced at price
func ValueOf(amount *uint256.Int, decimals uint8, price Wad) (Wad, error) {
	scaled, err := ToWad(amount, decimals)
	if err != nil {
		return Wad{}, err
	}

	return MulWad(scaled, price)
}

// AmountOf is the inverse of ValueOf, truncating to native units
func AmountOf(value Wad, decimals uint8, price Wad) (*uint256.Int, error) {
	if price.IsZero() {
		return nil, ErrDivisionByZero
	}

	scaled, err := DivWad(value, price)
	if err != nil {
		return nil, err
	}

	return FromWad(scaled, decimals)
}
