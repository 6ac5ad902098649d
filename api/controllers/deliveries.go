package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/opencourier/client-provider/api/responses"
	"github.com/opencourier/client-provider/api/validators"
	"github.com/opencourier/client-provider/internal/clients"
	"github.com/opencourier/client-provider/pkg/logger"
)

const defaultTimezone = "Etc/UTC"

type deliveriesRequest struct {
	Client       string          `json:"client" validate:"required"`
	Timezone     string          `json:"timezone"`
	SearchParams map[string]any  `json:"search_params"`
	CSV          json.RawMessage `json:"csv"`
}

// wantsCSV interprets the csv flag the way upstream senders use it:
// booleans as-is, strings via a trimmed case-insensitive truthy check
// ("", "yes" and "true" are true), absence defaults to true. The raw
// message keeps an absent flag apart from an explicit null, which is
// falsy like any other non-truthy value.
func wantsCSV(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return true
	}
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return slices.Contains([]string{"", "yes", "true"}, strings.ToLower(strings.TrimSpace(v)))
	case float64:
		return v != 0
	}
	return true
}

// Deliveries returns the client's delivery list as CSV or JSON.
func Deliveries(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteResult(w, http.StatusInternalServerError, "client service unavailable")
			return
		}

		payload, ok := decodeDeliveriesRequest(w, r)
		if !ok {
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithClient(ctx, payload.Client)
		}

		records, err := svc.GetDeliveries(ctx, payload.Client, payload.SearchParams, payload.Timezone)
		if err != nil {
			logError(ctx, logg, "list deliveries failed", err)
			responses.WriteResult(w, http.StatusInternalServerError, err.Error())
			return
		}

		if len(records) == 0 {
			responses.WriteResult(w, http.StatusNotFound, fmt.Sprintf("No deliveries found for client %s", payload.Client))
			return
		}

		if wantsCSV(payload.CSV) {
			responses.WriteCSV(w, http.StatusCreated, records)
			return
		}
		responses.WriteJSON(w, http.StatusCreated, records)
	}
}

// DeliveriesV2 always answers JSON and carries the extended delivery
// fields; the csv flag is gone from this version.
func DeliveriesV2(svc clients.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteResult(w, http.StatusInternalServerError, "client service unavailable")
			return
		}

		payload, ok := decodeDeliveriesRequest(w, r)
		if !ok {
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithClient(ctx, payload.Client)
		}

		records, err := svc.GetDeliveriesV2(ctx, payload.Client, payload.SearchParams, payload.Timezone)
		if err != nil {
			logError(ctx, logg, "list deliveries failed", err)
			responses.WriteResult(w, http.StatusInternalServerError, err.Error())
			return
		}

		if len(records) == 0 {
			responses.WriteResult(w, http.StatusNotFound, fmt.Sprintf("No deliveries found for client %s", payload.Client))
			return
		}

		responses.WriteJSON(w, http.StatusCreated, records)
	}
}

func decodeDeliveriesRequest(w http.ResponseWriter, r *http.Request) (deliveriesRequest, bool) {
	var payload deliveriesRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		if slices.Contains(validators.MissingFields(err), "client") {
			responses.WriteResult(w, http.StatusBadRequest, "Client code must be specified")
		} else {
			responses.WriteResult(w, http.StatusBadRequest, err.Error())
		}
		return deliveriesRequest{}, false
	}

	if payload.Timezone == "" {
		payload.Timezone = defaultTimezone
	}
	if payload.SearchParams == nil {
		payload.SearchParams = map[string]any{}
	}
	return payload, true
}
