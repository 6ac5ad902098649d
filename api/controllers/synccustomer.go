package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/opencourier/client-provider/api/params"
	"github.com/opencourier/client-provider/api/responses"
	"github.com/opencourier/client-provider/internal/tf"
	"github.com/opencourier/client-provider/pkg/logger"
)

// SyncCustomerTF serves GET, PUT and DELETE on one path. PUT/DELETE
// first apply the mutation from the normalized JSON body; every method
// then answers with a fresh get_client read of the normalized query
// arguments, so mutation responses reflect the post-mutation state.
func SyncCustomerTF(svc tf.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteResult(w, http.StatusInternalServerError, "tf service unavailable")
			return
		}

		ctx := r.Context()
		args := params.Normalize(params.FromQuery(r))
		if logg != nil {
			ctx = logg.WithField(ctx, "args", args)
			logg.Debug(ctx, "sync_customer_tf arguments")
		}

		// explicit verb dispatch instead of reflecting on the method name
		mutations := map[string]func(context.Context, map[string]any) error{
			http.MethodPut:    svc.PutClient,
			http.MethodDelete: svc.DeleteClient,
		}

		if mutate, ok := mutations[r.Method]; ok {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				responses.WriteResult(w, http.StatusBadRequest, err.Error())
				return
			}
			body = params.Normalize(body)

			if err := mutate(ctx, body); err != nil {
				logError(ctx, logg, "tf mutation failed", err)
				responses.WriteResult(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		data, err := svc.GetClient(ctx, args)
		if err != nil {
			logError(ctx, logg, "tf lookup failed", err)
			responses.WriteResult(w, http.StatusInternalServerError, err.Error())
			return
		}

		status := http.StatusOK
		if r.Method == http.MethodPut {
			status = http.StatusCreated
		}
		responses.WriteJSON(w, status, data)
	}
}
