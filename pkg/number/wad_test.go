package number

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWad(t *testing.T) {
	cases := []struct {
		raw      uint64
		decimals uint8
		want     string
	}{
		{100_000_000, 8, "1000000000000000000"},
		{1_000_000, 6, "1000000000000000000"},
		{1_000_000_000_000_000_000, 18, "1000000000000000000"},
		{123_456_789, 20, "1234567"},
		{99, 20, "0"},
		{0, 8, "0"},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%d@%d", c.raw, c.decimals), func(t *testing.T) {
			w, err := ToWad(uint256.NewInt(c.raw), c.decimals)
			require.NoError(t, err)
			assert.Equal(t, c.want, w.String())
		})
	}
}

func TestToWadOverflow(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	_, err := ToWad(max, 0)
	assert.ErrorIs(t, err, ErrOverflow)

	w, err := ToWad(max, 100)
	require.NoError(t, err)
	assert.True(t, w.IsZero())
}

func TestMulDivWad(t *testing.T) {
	price := MustParseWad("1")
	rate := MustParseWad("1.02")

	v, err := MulWad(price, rate)
	require.NoError(t, err)
	assert.Equal(t, "1020000000000000000", v.String())

	back, err := DivWad(v, rate)
	require.NoError(t, err)
	assert.True(t, back.Equal(price))

	_, err = DivWad(price, Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestValueRoundTrip(t *testing.T) {
	prices := []string{"1", "0.9998", "2000.5", "64123.12345678"}
	amounts := []uint64{1, 7, 1_000_000, 123_456_789, 99_999_999_999}

	for _, decimals := range []uint8{6, 8, 18} {
		for _, p := range prices {
			price := MustParseWad(p)
			if decimals == 18 && price.LessThan(One()) {
				// sub-unit prices lose more than one unit at full precision
				continue
			}

			for _, a := range amounts {
				amount := uint256.NewInt(a)
				value, err := ValueOf(amount, decimals, price)
				require.NoError(t, err)

				back, err := AmountOf(value, decimals, price)
				require.NoError(t, err)

				diff := new(uint256.Int).Sub(amount, back)
				if back.Gt(amount) {
					diff = new(uint256.Int).Sub(back, amount)
				}
				assert.Truef(t, diff.Cmp(uint256.NewInt(1)) <= 0, "decimals %d price %s amount %d got %s", decimals, p, a, back.Dec())
			}
		}
	}
}

func TestWadJSON(t *testing.T) {
	w := MustParseWad("1.5")
	b, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, `"1500000000000000000"`, string(b))

	var out Wad
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, out.Equal(w))
}

func TestWadScan(t *testing.T) {
	var w Wad
	require.NoError(t, w.Scan([]byte("42")))
	assert.Equal(t, "42", w.String())

	require.NoError(t, w.Scan(nil))
	assert.True(t, w.IsZero())

	v, err := MustParseWad("2").Value()
	require.NoError(t, err)
	assert.Equal(t, "2000000000000000000", v)
}
