package controllers

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/opencourier/client-provider/internal/clients"
	"github.com/opencourier/client-provider/pkg/logger"
	"github.com/opencourier/client-provider/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func addRouteParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

type testClientsService struct {
	getClientsFn   func(ctx context.Context) ([]string, error)
	langFn         func(ctx context.Context, codes []string) (map[string]string, error)
	deliveriesFn   func(ctx context.Context, client string, search map[string]any, timezone string) ([]*types.Record, error)
	deliveriesV2Fn func(ctx context.Context, client string, search map[string]any, timezone string) ([]*types.Record, error)
	dataFn         func(ctx context.Context, id int64) (map[string]any, error)
}

func (s *testClientsService) GetClients(ctx context.Context) ([]string, error) {
	if s.getClientsFn != nil {
		return s.getClientsFn(ctx)
	}
	return nil, nil
}

func (s *testClientsService) GetClientLangList(ctx context.Context, codes []string) (map[string]string, error) {
	if s.langFn != nil {
		return s.langFn(ctx, codes)
	}
	return nil, nil
}

func (s *testClientsService) GetDeliveries(ctx context.Context, client string, search map[string]any, timezone string) ([]*types.Record, error) {
	if s.deliveriesFn != nil {
		return s.deliveriesFn(ctx, client, search, timezone)
	}
	return nil, nil
}

func (s *testClientsService) GetDeliveriesV2(ctx context.Context, client string, search map[string]any, timezone string) ([]*types.Record, error) {
	if s.deliveriesV2Fn != nil {
		return s.deliveriesV2Fn(ctx, client, search, timezone)
	}
	return nil, nil
}

func (s *testClientsService) GetClientData(ctx context.Context, id int64) (map[string]any, error) {
	if s.dataFn != nil {
		return s.dataFn(ctx, id)
	}
	return nil, nil
}

var _ clients.Service = (*testClientsService)(nil)
