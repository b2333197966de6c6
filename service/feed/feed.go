package feed

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"time"

	"fairprice/core"
	"fairprice/pkg/resthttp"

	"github.com/go-chi/chi/middleware"
	"github.com/go-resty/resty/v2"
)

type answerView struct {
	Answer    string `json:"answer"`
	Decimals  uint8  `json:"decimals"`
	UpdatedAt int64  `json:"updated_at"`
}

type feedProvider struct {
	client *resty.Client
}

// New http feed provider
func New(endpoint string, timeout time.Duration) core.FeedProvider {
	return &feedProvider{
		client: resthttp.New(endpoint, timeout),
	}
}

func (s *feedProvider) LatestAnswer(ctx context.Context, feedID string) (*core.FeedAnswer, error) {
	uri := fmt.Sprintf("/feeds/%s/latest", url.PathEscape(feedID))
	resp, err := resthttp.WithRequestID(ctx, s.client, middleware.GetReqID(ctx)).Get(uri)
	if err != nil {
		return nil, err
	}

	var view answerView
	if err := resthttp.ParseResponse(resp, &view); err != nil {
		return nil, err
	}

	answer, ok := new(big.Int).SetString(view.Answer, 10)
	if !ok {
		return nil, fmt.Errorf("feed %s: invalid answer %q", feedID, view.Answer)
	}

	return &core.FeedAnswer{
		Answer:    answer,
		Decimals:  view.Decimals,
		UpdatedAt: view.UpdatedAt,
	}, nil
}
