package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestParseWad(t *testing.T) {
	data := map[string]string{
		"1":                     "1000000000000000000",
		"1.02":                  "1020000000000000000",
		"0.2":                   "200000000000000000",
		"3.0":                   "3000000000000000000",
		"0.0000000000000000019": "1",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			w, err := ParseWad(k)
			assert.Equal(t, nil, err)
			assert.Equal(t, v, w.String(), "should be raw wad units")
		})
	}
}

func TestParseWadRejectsNegative(t *testing.T) {
	_, err := ParseWad("-1")
	assert.NotEqual(t, nil, err)
}

func TestWadDecimal(t *testing.T) {
	data := map[string]string{
		"1020000000000000000": "1.02",
		"1":                   "0.000000000000000001",
		"0":                   "0",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			w, err := ParseRaw(k)
			assert.Equal(t, nil, err)
			assert.Equal(t, v, w.Decimal().String())
		})
	}
}
