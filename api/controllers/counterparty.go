package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opencourier/client-provider/api/responses"
	"github.com/opencourier/client-provider/internal/counterparty"
	"github.com/opencourier/client-provider/pkg/logger"
)

// ClientCounterparty returns {code: counterparty}. The lookup answers
// 200 even for unknown codes. This route deliberately has no local
// error mapping; a failing lookup is re-raised and the router's
// recoverer produces the 500.
func ClientCounterparty(svc counterparty.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "clientCode")

		value, err := svc.Counterparty(r.Context(), code)
		if err != nil {
			panic(err)
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{code: value})
	}
}
