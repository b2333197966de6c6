package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fairprice/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{core.NewError(core.ErrStalePrice, "eth"), http.StatusPreconditionFailed, int(core.ErrStalePrice)},
		{core.ErrUnauthorized, http.StatusForbidden, int(core.ErrUnauthorized)},
		{core.NewError(core.ErrAssetNotFound, "eth"), http.StatusNotFound, int(core.ErrAssetNotFound)},
		{core.NewError(core.ErrPaused, "eth"), http.StatusServiceUnavailable, int(core.ErrPaused)},
		{errors.New("boom"), http.StatusInternalServerError, http.StatusInternalServerError},
	}

	for _, c := range cases {
		w := httptest.NewRecorder()
		Error(w, c.err)
		assert.Equal(t, c.status, w.Code, c.err.Error())

		var resp errorResponse
		require.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, c.code, resp.Code, c.err.Error())
	}
}

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, H{"a": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"a":1}}`, w.Body.String())
}
