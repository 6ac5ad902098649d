package controllers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/opencourier/client-provider/api/responses"
	"github.com/opencourier/client-provider/internal/clients"
	"github.com/opencourier/client-provider/pkg/logger"
)

// ClientList returns the active client codes in the data layer's own
// order. An empty list is a 404 here.
func ClientList(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteResult(w, http.StatusInternalServerError, "client service unavailable")
			return
		}

		list, err := svc.GetClients(r.Context())
		if err != nil {
			logError(r.Context(), logg, "list clients failed", err)
			responses.WriteResult(w, http.StatusInternalServerError, err.Error())
			return
		}

		if len(list) == 0 {
			responses.WriteResult(w, http.StatusNotFound, "Client not found")
			return
		}

		responses.WriteJSON(w, http.StatusOK, list)
	}
}

// RundeckClientList is the automation-facing alias: the list is sorted
// alphabetically and an empty backend answers 200 with an empty array,
// because rundeck treats non-200 option sources as job failures.
func RundeckClientList(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteResult(w, http.StatusInternalServerError, "client service unavailable")
			return
		}

		list, err := svc.GetClients(r.Context())
		if err != nil {
			logError(r.Context(), logg, "list clients failed", err)
			responses.WriteResult(w, http.StatusInternalServerError, err.Error())
			return
		}

		if list == nil {
			list = []string{}
		}
		sort.Strings(list)

		responses.WriteJSON(w, http.StatusOK, list)
	}
}

// ClientLangList maps the posted client codes to their languages.
func ClientLangList(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteResult(w, http.StatusInternalServerError, "client service unavailable")
			return
		}

		var codes []string
		if err := json.NewDecoder(r.Body).Decode(&codes); err != nil {
			logError(r.Context(), logg, "decode client_lang body failed", err)
			responses.WriteResult(w, http.StatusInternalServerError, err.Error())
			return
		}

		langs, err := svc.GetClientLangList(r.Context(), codes)
		if err != nil {
			logError(r.Context(), logg, "list client languages failed", err)
			responses.WriteResult(w, http.StatusInternalServerError, err.Error())
			return
		}

		if len(langs) == 0 {
			responses.WriteResult(w, http.StatusNotFound, "Client not found")
			return
		}

		responses.WriteJSON(w, http.StatusOK, langs)
	}
}
