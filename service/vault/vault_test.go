package vault

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultProvider(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vaults/sdai":
			_, _ = w.Write([]byte(`{"vault":"sdai","asset":"dai","decimals":18,"asset_decimals":18}`))
		case "/vaults/sdai/convert":
			if r.URL.Query().Get("shares") != "1000000000000000000" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"assets":"1020000000000000000"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	p := New(ts.URL, time.Second)
	ctx := context.Background()

	info, err := p.Describe(ctx, "sdai")
	require.Nil(t, err)
	assert.Equal(t, "dai", info.Asset)
	assert.EqualValues(t, 18, info.Decimals)
	assert.EqualValues(t, 18, info.AssetDecimals)

	shares := uint256.NewInt(1_000_000_000_000_000_000)
	assets, err := p.ConvertToAssets(ctx, "sdai", shares)
	require.Nil(t, err)
	assert.Equal(t, "1020000000000000000", assets.Dec())

	_, err = p.Describe(ctx, "unknown")
	assert.Error(t, err)
}
