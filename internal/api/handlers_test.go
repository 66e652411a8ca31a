package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/malondahq/malonda/internal/ledger"
	"github.com/malondahq/malonda/internal/store"
	"github.com/malondahq/malonda/internal/types"
)

func newTestRouter(t *testing.T, apiKey string) http.Handler {
	t.Helper()
	db, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "malonda.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	svc := ledger.NewService(db, 5*time.Second, 50)
	return NewRouter(NewHandler(svc, apiKey, "test"))
}

func postCommand(t *testing.T, router http.Handler, command string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(types.CommandRequest{Command: command})
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/command", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) types.ResponseEnvelope {
	t.Helper()
	var env types.ResponseEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestCommandEndpoint_SaleFlow(t *testing.T) {
	router := newTestRouter(t, "")

	rec := postCommand(t, router, "add 10 books to stock")
	if rec.Code != http.StatusOK {
		t.Fatalf("stock add status = %d, want 200", rec.Code)
	}
	if env := decodeEnvelope(t, rec); !env.Success {
		t.Fatalf("stock add envelope = %+v", env)
	}

	rec = postCommand(t, router, "ndagulitsa 3 books pa 500")
	env := decodeEnvelope(t, rec)
	if !env.Success || env.Kind != types.KindSuccess {
		t.Fatalf("sale envelope = %+v, want success", env)
	}
	if !strings.Contains(env.Message, "1500") {
		t.Errorf("sale message %q missing amount 1500", env.Message)
	}

	// Inventory reflects the decrement.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	invRec := httptest.NewRecorder()
	router.ServeHTTP(invRec, req)
	if invRec.Code != http.StatusOK {
		t.Fatalf("inventory status = %d, want 200", invRec.Code)
	}
	var items []types.InventoryItem
	if err := json.NewDecoder(invRec.Body).Decode(&items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Quantity != 7 {
		t.Errorf("inventory = %+v, want books with 7", items)
	}
}

func TestCommandEndpoint_CorrectiveErrorsAreHTTP200(t *testing.T) {
	router := newTestRouter(t, "")

	for _, cmd := range []string{"", "sold 3 books at 0", "hello there"} {
		rec := postCommand(t, router, cmd)
		if rec.Code != http.StatusOK {
			t.Errorf("command %q status = %d, want 200", cmd, rec.Code)
			continue
		}
		env := decodeEnvelope(t, rec)
		if env.Success || env.Kind != types.KindError {
			t.Errorf("command %q envelope = %+v, want error", cmd, env)
		}
	}
}

func TestCommandEndpoint_MalformedJSON(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/command", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q, want problem+json", ct)
	}
}

func TestReportEndpoints(t *testing.T) {
	router := newTestRouter(t, "")

	postCommand(t, router, "add 5 books to stock")
	postCommand(t, router, "sold 2 books at 500")
	postCommand(t, router, "bought sugar for 3000")

	t.Run("sales", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		var sales []types.SaleRecord
		if err := json.NewDecoder(rec.Body).Decode(&sales); err != nil {
			t.Fatal(err)
		}
		if len(sales) != 1 || sales[0].Amount != 1000 {
			t.Errorf("sales = %+v, want one record of 1000", sales)
		}
	})

	t.Run("expenses", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		var expenses []types.ExpenseRecord
		if err := json.NewDecoder(rec.Body).Decode(&expenses); err != nil {
			t.Fatal(err)
		}
		if len(expenses) != 1 || expenses[0].Amount != 3000 {
			t.Errorf("expenses = %+v, want one record of 3000", expenses)
		}
	})

	t.Run("summary", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/summary?period=today", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		var sum types.Summary
		if err := json.NewDecoder(rec.Body).Decode(&sum); err != nil {
			t.Fatal(err)
		}
		if sum.SalesTotal != 1000 || sum.ExpenseTotal != 3000 || sum.Profit != -2000 {
			t.Errorf("summary = %+v, want 1000/3000/-2000", sum)
		}
	})

	t.Run("bad period", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/summary?period=decade", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, "secret")

	// Health stays public even when auth is configured.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var health types.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "healthy" || health.Version != "test" {
		t.Errorf("health = %+v", health)
	}
}

func TestAuth(t *testing.T) {
	router := newTestRouter(t, "secret")

	rec := postCommand(t, router, "stock")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", rec.Code)
	}

	body, _ := json.Marshal(types.CommandRequest{Command: "stock"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/command", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer secret")
	authed := httptest.NewRecorder()
	router.ServeHTTP(authed, req)
	if authed.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d, want 200", authed.Code)
	}
}
