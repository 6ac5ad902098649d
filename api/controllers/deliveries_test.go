package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opencourier/client-provider/pkg/types"
)

func deliveryFixture() []*types.Record {
	rec := types.NewRecord()
	rec.Set("reference", "D-1")
	rec.Set("client", "ACME")
	rec.Set("status", "pending")
	return []*types.Record{rec}
}

func TestWantsCSV(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{"absent", "", true},
		{"explicit null", `null`, false},
		{"bool true", `true`, true},
		{"bool false", `false`, false},
		{"yes", `"yes"`, true},
		{"YES with space", `" Yes "`, true},
		{"true string", `"true"`, true},
		{"empty string", `""`, true},
		{"no", `"no"`, false},
		{"garbage string", `"nope"`, false},
		{"number one", `1`, true},
		{"number zero", `0`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var raw json.RawMessage
			if tc.raw != "" {
				raw = json.RawMessage(tc.raw)
			}
			if got := wantsCSV(raw); got != tc.want {
				t.Fatalf("wantsCSV(%s) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDeliveriesMissingClientIs400(t *testing.T) {
	svc := &testClientsService{deliveriesFn: func(context.Context, string, map[string]any, string) ([]*types.Record, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	Deliveries(svc, testLogger())(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Client code must be specified") {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestDeliveriesDefaultsToCSV(t *testing.T) {
	svc := &testClientsService{deliveriesFn: func(ctx context.Context, client string, search map[string]any, timezone string) ([]*types.Record, error) {
		if client != "ACME" {
			t.Fatalf("unexpected client %q", client)
		}
		if timezone != "Etc/UTC" {
			t.Fatalf("timezone default missing, got %q", timezone)
		}
		if search == nil {
			t.Fatal("search params must default to an empty map")
		}
		return deliveryFixture(), nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(`{"client":"ACME"}`))
	w := httptest.NewRecorder()
	Deliveries(svc, testLogger())(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("unexpected content type %q", ct)
	}
	want := "reference,client,status\r\nD-1,ACME,pending\r\n"
	if w.Body.String() != want {
		t.Fatalf("unexpected csv body %q", w.Body.String())
	}
}

func TestDeliveriesCSVFlagVariants(t *testing.T) {
	svc := &testClientsService{deliveriesFn: func(context.Context, string, map[string]any, string) ([]*types.Record, error) {
		return deliveryFixture(), nil
	}}

	cases := []struct {
		name    string
		body    string
		wantCSV bool
	}{
		{"string yes", `{"client":"ACME","csv":"yes"}`, true},
		{"bool true", `{"client":"ACME","csv":true}`, true},
		{"string no", `{"client":"ACME","csv":"no"}`, false},
		{"bool false", `{"client":"ACME","csv":false}`, false},
		{"explicit null", `{"client":"ACME","csv":null}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			Deliveries(svc, testLogger())(w, req)

			if w.Code != http.StatusCreated {
				t.Fatalf("unexpected status %d", w.Code)
			}
			wantCT := "application/json"
			if tc.wantCSV {
				wantCT = "text/csv"
			}
			if ct := w.Header().Get("Content-Type"); ct != wantCT {
				t.Fatalf("unexpected content type %q", ct)
			}
		})
	}
}

func TestDeliveriesNoRowsIs404(t *testing.T) {
	svc := &testClientsService{}

	req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(`{"client":"GHOST"}`))
	w := httptest.NewRecorder()
	Deliveries(svc, testLogger())(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No deliveries found for client GHOST") {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestDeliveriesServiceErrorIs500(t *testing.T) {
	svc := &testClientsService{deliveriesFn: func(context.Context, string, map[string]any, string) ([]*types.Record, error) {
		return nil, context.DeadlineExceeded
	}}

	req := httptest.NewRequest(http.MethodPost, "/deliveries", strings.NewReader(`{"client":"ACME"}`))
	w := httptest.NewRecorder()
	Deliveries(svc, testLogger())(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestDeliveriesV2IgnoresCSVFlag(t *testing.T) {
	svc := &testClientsService{deliveriesV2Fn: func(context.Context, string, map[string]any, string) ([]*types.Record, error) {
		return deliveryFixture(), nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/v2/deliveries", strings.NewReader(`{"client":"ACME","csv":"yes"}`))
	w := httptest.NewRecorder()
	DeliveriesV2(svc, testLogger())(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("v2 must always answer json, got %q", ct)
	}
}

func TestDeliveriesV2MissingClientIs400(t *testing.T) {
	svc := &testClientsService{}

	req := httptest.NewRequest(http.MethodPost, "/v2/deliveries", strings.NewReader(`{"timezone":"Etc/UTC"}`))
	w := httptest.NewRecorder()
	DeliveriesV2(svc, testLogger())(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", w.Code)
	}
}
