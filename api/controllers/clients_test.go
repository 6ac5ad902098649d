package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestClientListReturnsBackendOrder(t *testing.T) {
	svc := &testClientsService{getClientsFn: func(ctx context.Context) ([]string, error) {
		return []string{"ZULU", "ACME"}, nil
	}}

	w := httptest.NewRecorder()
	ClientList(svc, testLogger())(w, httptest.NewRequest(http.MethodGet, "/clients", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if got := w.Header().Get("Mimetype"); got != "application/json" {
		t.Fatalf("missing mimetype header, got %q", got)
	}

	var list []string
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(list, []string{"ZULU", "ACME"}) {
		t.Fatalf("list was reordered: %v", list)
	}
}

func TestClientListEmptyIs404(t *testing.T) {
	svc := &testClientsService{}

	w := httptest.NewRecorder()
	ClientList(svc, testLogger())(w, httptest.NewRequest(http.MethodGet, "/clients", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["result"] != "Client not found" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestClientListBackendErrorIs500(t *testing.T) {
	svc := &testClientsService{getClientsFn: func(ctx context.Context) ([]string, error) {
		return nil, errors.New("store exploded")
	}}

	w := httptest.NewRecorder()
	ClientList(svc, testLogger())(w, httptest.NewRequest(http.MethodGet, "/clients", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "store exploded") {
		t.Fatalf("error text missing from body %q", w.Body.String())
	}
}

func TestRundeckClientListEmptyIs200(t *testing.T) {
	svc := &testClientsService{}

	w := httptest.NewRecorder()
	RundeckClientList(svc, testLogger())(w, httptest.NewRequest(http.MethodGet, "/rundeck/clients", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", w.Body.String())
	}
}

func TestRundeckClientListSorts(t *testing.T) {
	svc := &testClientsService{getClientsFn: func(ctx context.Context) ([]string, error) {
		return []string{"ZULU", "ACME", "MIKE"}, nil
	}}

	w := httptest.NewRecorder()
	RundeckClientList(svc, testLogger())(w, httptest.NewRequest(http.MethodGet, "/rundeck/clients", nil))

	var list []string
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(list, []string{"ACME", "MIKE", "ZULU"}) {
		t.Fatalf("list not sorted: %v", list)
	}
}

func TestClientLangList(t *testing.T) {
	svc := &testClientsService{langFn: func(ctx context.Context, codes []string) (map[string]string, error) {
		if len(codes) != 2 {
			t.Fatalf("unexpected codes %v", codes)
		}
		return map[string]string{"ACME": "en", "BETA": "de"}, nil
	}}

	req := httptest.NewRequest(http.MethodPost, "/client_lang", strings.NewReader(`["ACME","BETA"]`))
	w := httptest.NewRecorder()
	ClientLangList(svc, testLogger())(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var langs map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &langs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if langs["BETA"] != "de" {
		t.Fatalf("unexpected langs %v", langs)
	}
}

func TestClientLangListEmptyIs404(t *testing.T) {
	svc := &testClientsService{}

	req := httptest.NewRequest(http.MethodPost, "/client_lang", strings.NewReader(`["GONE"]`))
	w := httptest.NewRecorder()
	ClientLangList(svc, testLogger())(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestClientLangListBadBodyIs500(t *testing.T) {
	svc := &testClientsService{}

	req := httptest.NewRequest(http.MethodPost, "/client_lang", strings.NewReader(`{"not":"a list"}`))
	w := httptest.NewRecorder()
	ClientLangList(svc, testLogger())(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", w.Code)
	}
}
