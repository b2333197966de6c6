package rest

import (
	"net/http"

	"fairprice/handler/param"
	"fairprice/handler/render"
	"fairprice/handler/views"
	"fairprice/pkg/number"
	"fairprice/service/oracle"

	"github.com/go-chi/chi"
	"github.com/holiman/uint256"
	"github.com/twitchtv/twirp"
)

func priceHandler(o *oracle.Oracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := o.GetPrice(r.Context(), chi.URLParam(r, "asset"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.PriceView(p, o.Now()))
	}
}

func priceAgeHandler(o *oracle.Oracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		assetID := chi.URLParam(r, "asset")

		age, err := o.PriceAge(ctx, assetID)
		if err != nil {
			render.Error(w, err)
			return
		}

		fresh, err := o.IsPriceFresh(ctx, assetID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AgeView(assetID, age, fresh))
	}
}

func quoteHandler(o *oracle.Oracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := o.ResolvePrice(r.Context(), chi.URLParam(r, "asset"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.ResolutionView(res))
	}
}

func refreshHandler(o *oracle.Oracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := o.FetchAndUpdate(r.Context(), chi.URLParam(r, "asset"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.ResolutionView(res))
	}
}

func valueHandler(o *oracle.Oracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount string `json:"amount" valid:"int,required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		amount, err := uint256.FromDecimal(params.Amount)
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("amount", err.Error()))
			return
		}

		value, err := o.ToUSD(r.Context(), chi.URLParam(r, "asset"), amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"amount": amount.Dec(),
			"value":  value.Decimal(),
		})
	}
}

func amountHandler(o *oracle.Oracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Value string `json:"value" valid:"float,required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		value, err := number.ParseWad(params.Value)
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("value", err.Error()))
			return
		}

		amount, err := o.FromUSD(r.Context(), chi.URLParam(r, "asset"), value)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"value":  value.Decimal(),
			"amount": amount.Dec(),
		})
	}
}
