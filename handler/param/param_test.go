package param

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type quoteParams struct {
	Amount string `json:"amount" valid:"numeric,required"`
}

func TestBindingQuery(t *testing.T) {
	var p quoteParams
	r := httptest.NewRequest("GET", "/value?amount=1000&other=1", nil)
	assert.Nil(t, Binding(r, &p))
	assert.Equal(t, "1000", p.Amount)

	r = httptest.NewRequest("GET", "/value?amount=abc", nil)
	assert.Error(t, Binding(r, &quoteParams{}))

	r = httptest.NewRequest("GET", "/value", nil)
	assert.Error(t, Binding(r, &quoteParams{}))
}

func TestBindingBody(t *testing.T) {
	var p quoteParams
	r := httptest.NewRequest("POST", "/value", strings.NewReader(`{"amount":"42"}`))
	assert.Nil(t, Binding(r, &p))
	assert.Equal(t, "42", p.Amount)

	r = httptest.NewRequest("POST", "/value", strings.NewReader(`{`))
	assert.Error(t, Binding(r, &quoteParams{}))
}
