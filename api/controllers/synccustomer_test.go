package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/opencourier/client-provider/pkg/errors"
)

type testTFService struct {
	getFn    func(ctx context.Context, args map[string]any) (map[string]any, error)
	putFn    func(ctx context.Context, args map[string]any) error
	deleteFn func(ctx context.Context, args map[string]any) error
}

func (s *testTFService) GetClient(ctx context.Context, args map[string]any) (map[string]any, error) {
	if s.getFn != nil {
		return s.getFn(ctx, args)
	}
	return map[string]any{}, nil
}

func (s *testTFService) PutClient(ctx context.Context, args map[string]any) error {
	if s.putFn != nil {
		return s.putFn(ctx, args)
	}
	return nil
}

func (s *testTFService) DeleteClient(ctx context.Context, args map[string]any) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, args)
	}
	return nil
}

func TestSyncCustomerTFGetNormalizesQueryArgs(t *testing.T) {
	svc := &testTFService{getFn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
		if args["code"] != "big_corp" {
			t.Fatalf("query args not normalized: %v", args)
		}
		return map[string]any{"code": "big_corp", "name": "Big Corp"}, nil
	}}

	req := httptest.NewRequest(http.MethodGet, "/sync_customer_tf?code=+big+corp+", nil)
	w := httptest.NewRecorder()
	SyncCustomerTF(svc, testLogger())(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["name"] != "Big Corp" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestSyncCustomerTFPutAnswersPostMutationState(t *testing.T) {
	var stored map[string]any
	svc := &testTFService{
		putFn: func(ctx context.Context, args map[string]any) error {
			stored = args
			return nil
		},
		getFn: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			if stored == nil {
				t.Fatal("read-back happened before the mutation")
			}
			return stored, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/sync_customer_tf?code=ACME",
		strings.NewReader(`{"code":"ACME","name":"Acme Corp","empty":""}`))
	w := httptest.NewRecorder()
	SyncCustomerTF(svc, testLogger())(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if _, ok := stored["empty"]; ok {
		t.Fatalf("empty values must be dropped from the body: %v", stored)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["name"] != "Acme Corp" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestSyncCustomerTFMutationFailureIs400(t *testing.T) {
	svc := &testTFService{
		putFn: func(context.Context, map[string]any) error {
			return pkgerrors.New(pkgerrors.CodeValidation, "tf client code required")
		},
		getFn: func(context.Context, map[string]any) (map[string]any, error) {
			t.Fatal("read-back must not run after a failed mutation")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/sync_customer_tf", strings.NewReader(`{"name":"No Code"}`))
	w := httptest.NewRecorder()
	SyncCustomerTF(svc, testLogger())(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "tf client code required") {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestSyncCustomerTFBadBodyIs400(t *testing.T) {
	svc := &testTFService{}

	req := httptest.NewRequest(http.MethodPut, "/sync_customer_tf", strings.NewReader(`not json`))
	w := httptest.NewRecorder()
	SyncCustomerTF(svc, testLogger())(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestSyncCustomerTFDeleteIs200(t *testing.T) {
	deleted := false
	svc := &testTFService{
		deleteFn: func(ctx context.Context, args map[string]any) error {
			deleted = true
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/sync_customer_tf?code=ACME",
		strings.NewReader(`{"code":"ACME"}`))
	w := httptest.NewRecorder()
	SyncCustomerTF(svc, testLogger())(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if !deleted {
		t.Fatal("delete mutation did not run")
	}
}

func TestSyncCustomerTFLookupFailureIs500(t *testing.T) {
	svc := &testTFService{getFn: func(context.Context, map[string]any) (map[string]any, error) {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "load tf client")
	}}

	req := httptest.NewRequest(http.MethodGet, "/sync_customer_tf", nil)
	w := httptest.NewRecorder()
	SyncCustomerTF(svc, testLogger())(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", w.Code)
	}
}
