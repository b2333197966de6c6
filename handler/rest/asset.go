package rest

import (
	"net/http"

	"fairprice/core"
	"fairprice/handler/param"
	"fairprice/handler/render"
	"fairprice/handler/views"
	"fairprice/service/oracle"

	"github.com/go-chi/chi"
)

func assetsHandler(o *oracle.Oracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := o.SupportedAssets(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		if assets == nil {
			assets = []string{}
		}

		render.JSON(w, assets)
	}
}

func assetHandler(o *oracle.Oracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asset, err := o.Asset(r.Context(), chi.URLParam(r, "asset"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.AssetView(asset))
	}
}

func settingsHandler(o *oracle.Oracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, views.SettingsView(o.Settings(), o.Limits()))
	}
}

func eventsHandler(events core.EventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			From  int64 `json:"from"`
			Limit int   `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if params.Limit <= 0 || params.Limit > 500 {
			params.Limit = 100
		}

		list, err := events.List(r.Context(), params.From, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		if list == nil {
			list = []*core.Event{}
		}

		render.JSON(w, list)
	}
}
