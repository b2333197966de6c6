package vault

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"fairprice/core"
	"fairprice/pkg/resthttp"

	"github.com/go-chi/chi/middleware"
	"github.com/go-resty/resty/v2"
	"github.com/holiman/uint256"
)

type convertView struct {
	Assets string `json:"assets"`
}

type vaultProvider struct {
	client *resty.Client
}

// New http vault provider
func New(endpoint string, timeout time.Duration) core.VaultProvider {
	return &vaultProvider{
		client: resthttp.New(endpoint, timeout),
	}
}

func (s *vaultProvider) request(ctx context.Context) *resty.Request {
	return resthttp.WithRequestID(ctx, s.client, middleware.GetReqID(ctx))
}

func (s *vaultProvider) Describe(ctx context.Context, vaultID string) (*core.VaultInfo, error) {
	resp, err := s.request(ctx).Get("/vaults/" + url.PathEscape(vaultID))
	if err != nil {
		return nil, err
	}

	var info core.VaultInfo
	if err := resthttp.ParseResponse(resp, &info); err != nil {
		return nil, err
	}

	return &info, nil
}

func (s *vaultProvider) ConvertToAssets(ctx context.Context, vaultID string, shares *uint256.Int) (*uint256.Int, error) {
	resp, err := s.request(ctx).
		SetQueryParam("shares", shares.Dec()).
		Get(fmt.Sprintf("/vaults/%s/convert", url.PathEscape(vaultID)))
	if err != nil {
		return nil, err
	}

	var view convertView
	if err := resthttp.ParseResponse(resp, &view); err != nil {
		return nil, err
	}

	assets, err := uint256.FromDecimal(view.Assets)
	if err != nil {
		return nil, fmt.Errorf("vault %s: invalid assets %q: %w", vaultID, view.Assets, err)
	}

	return assets, nil
}
