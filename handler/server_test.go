package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fairprice/core"
	"fairprice/pkg/number"
	"fairprice/service/admin"
	"fairprice/service/notifier"
	"fairprice/service/oracle"
	"fairprice/store/memory"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminToken = "secret"

type feeds map[string]*core.FeedAnswer

func (f feeds) LatestAnswer(_ context.Context, feedID string) (*core.FeedAnswer, error) {
	a, ok := f[feedID]
	if !ok {
		return nil, errors.New("unknown feed")
	}
	return a, nil
}

type noVaults struct{}

func (noVaults) Describe(context.Context, string) (*core.VaultInfo, error) {
	return nil, errors.New("not a vault")
}

func (noVaults) ConvertToAssets(context.Context, string, *uint256.Int) (*uint256.Int, error) {
	return nil, errors.New("not a vault")
}

type envelope struct {
	Data json.RawMessage `json:"data"`
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	now := time.Unix(1_700_000_000, 0)
	fs := feeds{
		"eth-usd": {Answer: big.NewInt(2000_00000000), Decimals: 8, UpdatedAt: now.Unix()},
	}

	limits := core.Limits{
		MinStalePeriod:    time.Hour,
		MaxStalePeriod:    3 * time.Hour,
		MaxRecursionDepth: 3,
		DefaultMinRate:    number.MustParseWad("0.2"),
		DefaultMaxRate:    number.MustParseWad("3.0"),
		MaxRateCeiling:    number.MustParseWad("100"),
		MinPrice:          number.MustParseWad("0.00000001"),
		MaxPrice:          number.MustParseWad("1000000000"),
		ManualDeviation:   number.MustParseWad("0.1"),
		ProviderTimeout:   time.Second,
	}

	assets := memory.NewAssetStore()
	events := memory.NewEventStore()
	n := notifier.New(events)
	o := oracle.New(assets, memory.NewPriceStore(), memory.NewSettingsStore(), fs, noVaults{}, limits,
		oracle.WithClock(func() time.Time { return now }),
		oracle.WithNotifier(n),
	)
	require.NoError(t, o.Init(context.Background(), &core.Settings{
		StalePeriod:         time.Hour,
		FallbackStalePeriod: 4 * time.Hour,
	}))

	cfg := &core.Config{Admins: []core.Admin{{ID: "owner", Token: adminToken}}}
	adminSrv := admin.New(cfg, o, assets, fs, noVaults{}, n)

	ts := httptest.NewServer(New(cfg, o, adminSrv, events, "test").Handler())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token, body string) (int, *envelope) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, ts.URL+path, r)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, &env
}

func field(t *testing.T, env *envelope, key string) interface{} {
	t.Helper()

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data[key]
}

func TestHealthCheck(t *testing.T) {
	ts := newServer(t)

	status, env := call(t, ts, "GET", "/hc", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "test", field(t, env, "version"))
	assert.Equal(t, "NORMAL", field(t, env, "mode"))
}

func TestAdminRequiresToken(t *testing.T) {
	ts := newServer(t)
	body := `{"asset_id":"eth","feed_id":"eth-usd","decimals":18}`

	status, env := call(t, ts, "POST", "/api/admin/feeds", "", body)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, int(core.ErrUnauthorized), env.Code)

	status, _ = call(t, ts, "POST", "/api/admin/feeds", "wrong", body)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestPriceFlow(t *testing.T) {
	ts := newServer(t)

	status, _ := call(t, ts, "POST", "/api/admin/feeds", adminToken, `{"asset_id":"eth","feed_id":"eth-usd","decimals":18}`)
	require.Equal(t, http.StatusOK, status)

	status, env := call(t, ts, "GET", "/api/prices/eth", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int(core.ErrNoPrice), env.Code)

	status, env = call(t, ts, "GET", "/api/prices/eth/quote", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2000", field(t, env, "price"))

	status, env = call(t, ts, "POST", "/api/prices/eth/refresh", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "feed", field(t, env, "source"))

	status, env = call(t, ts, "GET", "/api/prices/eth", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2000", field(t, env, "price"))
	assert.Equal(t, "2000000000000000000000", field(t, env, "raw"))

	status, env = call(t, ts, "GET", "/api/prices/eth/age", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, field(t, env, "fresh"))
	assert.EqualValues(t, 0, field(t, env, "age"))

	status, env = call(t, ts, "GET", "/api/prices/eth/value?amount=1500000000000000000", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "3000", field(t, env, "value"))

	status, env = call(t, ts, "GET", "/api/prices/eth/amount?value=3000", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1500000000000000000", field(t, env, "amount"))

	status, env = call(t, ts, "GET", "/api/prices/eth/value?amount=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = call(t, ts, "GET", "/api/assets", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `["eth"]`, string(env.Data))

	status, env = call(t, ts, "GET", "/api/assets/eth", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "eth-usd", field(t, env, "feed_id"))

	status, _ = call(t, ts, "GET", "/api/assets/btc", "", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPauseBlocksRefresh(t *testing.T) {
	ts := newServer(t)

	status, _ := call(t, ts, "POST", "/api/admin/feeds", adminToken, `{"asset_id":"eth","feed_id":"eth-usd","decimals":18}`)
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, ts, "POST", "/api/admin/pause", adminToken, `{"reason":"incident"}`)
	require.Equal(t, http.StatusOK, status)

	status, env := call(t, ts, "POST", "/api/prices/eth/refresh", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, int(core.ErrPaused), env.Code)

	status, env = call(t, ts, "GET", "/api/settings", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "PAUSED", field(t, env, "mode"))

	status, _ = call(t, ts, "POST", "/api/admin/resume", adminToken, "")
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, ts, "POST", "/api/prices/eth/refresh", "", "")
	assert.Equal(t, http.StatusOK, status)

	status, env = call(t, ts, "GET", "/api/events?limit=10", "", "")
	require.Equal(t, http.StatusOK, status)

	var list []*core.Event
	require.NoError(t, json.Unmarshal(env.Data, &list))
	var types []core.EventType
	for _, e := range list {
		types = append(types, e.Type)
	}
	assert.Equal(t, []core.EventType{
		core.EventFeedRegistered,
		core.EventPaused,
		core.EventResumed,
		core.EventPriceUpdated,
	}, types)
}

func TestStalePeriodBounds(t *testing.T) {
	ts := newServer(t)

	status, _ := call(t, ts, "PUT", "/api/admin/stale-period", adminToken, `{"period":7200}`)
	assert.Equal(t, http.StatusOK, status)

	status, env := call(t, ts, "PUT", "/api/admin/stale-period", adminToken, `{"period":60}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(core.ErrInvalidConfiguration), env.Code)
}
