package keeper

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fairprice/core"
	"fairprice/service/oracle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOracle struct {
	mux      sync.Mutex
	settings core.Settings
	assets   []string
	failing  map[string]bool
	calls    []string
}

func (s *stubOracle) Settings() core.Settings {
	return s.settings
}

func (s *stubOracle) SupportedAssets(context.Context) ([]string, error) {
	return s.assets, nil
}

func (s *stubOracle) FetchAndUpdate(_ context.Context, assetID string) (*oracle.Resolution, error) {
	s.mux.Lock()
	s.calls = append(s.calls, assetID)
	s.mux.Unlock()

	if s.failing[assetID] {
		return nil, errors.New("unavailable")
	}

	return &oracle.Resolution{AssetID: assetID}, nil
}

func TestTick(t *testing.T) {
	ctx := context.Background()
	o := &stubOracle{
		settings: core.Settings{Mode: core.ModeNormal},
		assets:   []string{"eth", "dai", "sdai", "broken"},
		failing:  map[string]bool{"broken": true},
	}

	w, err := New(o, core.Keeper{Schedule: "@every 1m", Concurrency: 2})
	require.Nil(t, err)

	r, err := w.Tick(ctx)
	require.Nil(t, err)
	assert.Equal(t, 3, r.Updated)
	assert.Equal(t, 1, r.Failed)
	assert.False(t, r.Skipped)
	assert.ElementsMatch(t, o.assets, o.calls)
}

func TestTickSkipsWhilePaused(t *testing.T) {
	o := &stubOracle{
		settings: core.Settings{Mode: core.ModePaused},
		assets:   []string{"eth"},
	}

	w, err := New(o, core.Keeper{Schedule: "@every 1m", Concurrency: 1})
	require.Nil(t, err)

	r, err := w.Tick(context.Background())
	require.Nil(t, err)
	assert.True(t, r.Skipped)
	assert.Empty(t, o.calls)
}

func TestInvalidSchedule(t *testing.T) {
	_, err := New(&stubOracle{}, core.Keeper{Schedule: "every minute"})
	assert.Error(t, err)
}
