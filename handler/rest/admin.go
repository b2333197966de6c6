package rest

import (
	"context"
	"net/http"
	"time"

	"fairprice/handler/param"
	"fairprice/handler/render"
	"fairprice/handler/request"
	"fairprice/handler/views"
	"fairprice/pkg/number"
	"fairprice/service/admin"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

func actorOf(r *http.Request) string {
	actor, _ := request.NewContext(r.Context()).GetAdmin()
	return actor
}

func registerFeedHandler(s *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			AssetID  string `json:"asset_id" valid:"required"`
			FeedID   string `json:"feed_id" valid:"required"`
			Decimals uint8  `json:"decimals"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		asset, err := s.RegisterFeed(r.Context(), actorOf(r), params.AssetID, params.FeedID, params.Decimals)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AssetView(asset))
	}
}

func registerVaultHandler(s *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			VaultID    string `json:"vault_id" valid:"required"`
			Underlying string `json:"underlying" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		asset, err := s.RegisterVault(r.Context(), actorOf(r), params.VaultID, params.Underlying)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AssetView(asset))
	}
}

func setManualPriceHandler(s *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			AssetID string `json:"asset_id" valid:"required"`
			Price   string `json:"price" valid:"float,required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		price, err := number.ParseWad(params.Price)
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("price", err.Error()))
			return
		}

		if err := s.SetManualPrice(r.Context(), actorOf(r), params.AssetID, price); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"asset_id": params.AssetID, "price": price.Decimal()})
	}
}

func disableManualPriceHandler(s *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assetID := chi.URLParam(r, "asset")
		if err := s.DisableManualPrice(r.Context(), actorOf(r), assetID); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"asset_id": assetID})
	}
}

func stalePeriodHandler(set func(ctx context.Context, actor string, period time.Duration) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Period int64 `json:"period"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if err := set(r.Context(), actorOf(r), time.Duration(params.Period)*time.Second); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"period": params.Period})
	}
}

func rateBoundsHandler(s *admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			MinRate string `json:"min_rate" valid:"float,required"`
			MaxRate string `json:"max_rate" valid:"float,required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		min, err := number.ParseWad(params.MinRate)
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("min_rate", err.Error()))
			return
		}

		max, err := number.ParseWad(params.MaxRate)
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("max_rate", err.Error()))
			return
		}

		assetID := chi.URLParam(r, "asset")
		if err := s.SetVaultRateBounds(r.Context(), actorOf(r), assetID, min, max); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"asset_id": assetID,
			"min_rate": min.Decimal(),
			"max_rate": max.Decimal(),
		})
	}
}

func modeHandler(set func(ctx context.Context, actor, reason string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Reason string `json:"reason"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if err := set(r.Context(), actorOf(r), params.Reason); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"reason": params.Reason})
	}
}
