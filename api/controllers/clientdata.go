package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opencourier/client-provider/api/responses"
	"github.com/opencourier/client-provider/internal/clients"
	"github.com/opencourier/client-provider/pkg/logger"
)

// ClientData returns one client's profile by numeric id.
func ClientData(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteResult(w, http.StatusInternalServerError, "client service unavailable")
			return
		}

		// the route pattern restricts the param to digits already
		id, err := strconv.ParseInt(chi.URLParam(r, "clientID"), 10, 64)
		if err != nil {
			responses.WriteResult(w, http.StatusNotFound, "Client not found")
			return
		}

		data, err := svc.GetClientData(r.Context(), id)
		if err != nil {
			logError(r.Context(), logg, "load client data failed", err)
			responses.WriteResult(w, http.StatusInternalServerError, err.Error())
			return
		}

		if data == nil {
			responses.WriteResult(w, http.StatusNotFound, fmt.Sprintf("Client not found (id=[%d])", id))
			return
		}

		responses.WriteJSON(w, http.StatusOK, data)
	}
}
