// Package e2e exercises the full service stack: router, handlers, ledger
// service, and a real SQLite store on disk.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/malondahq/malonda/internal/api"
	"github.com/malondahq/malonda/internal/ledger"
	"github.com/malondahq/malonda/internal/store"
	"github.com/malondahq/malonda/internal/types"
)

// testServer wraps a running httptest server over the real stack.
type testServer struct {
	*httptest.Server
	db *store.SQLiteStore
}

func startServer(t *testing.T) *testServer {
	t.Helper()

	db, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "malonda.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	svc := ledger.NewService(db, 5*time.Second, 50)
	router := api.NewRouter(api.NewHandler(svc, "", "e2e"))

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})

	return &testServer{Server: srv, db: db}
}

// command POSTs one phrase and returns the decoded envelope.
func (s *testServer) command(t *testing.T, phrase string) types.ResponseEnvelope {
	t.Helper()

	env, err := s.tryCommand(phrase)
	if err != nil {
		t.Fatalf("command %q: %v", phrase, err)
	}
	return env
}

// tryCommand is the goroutine-safe variant: it reports failures as errors
// instead of failing the test directly.
func (s *testServer) tryCommand(phrase string) (types.ResponseEnvelope, error) {
	body, err := json.Marshal(types.CommandRequest{Command: phrase})
	if err != nil {
		return types.ResponseEnvelope{}, err
	}

	resp, err := http.Post(s.URL+"/api/v1/command", "application/json", bytes.NewReader(body))
	if err != nil {
		return types.ResponseEnvelope{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.ResponseEnvelope{}, fmt.Errorf("status %d, want 200", resp.StatusCode)
	}

	var env types.ResponseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return types.ResponseEnvelope{}, err
	}
	return env, nil
}

// get decodes a GET endpoint's JSON body into out.
func (s *testServer) get(t *testing.T, path string, out any) {
	t.Helper()

	resp, err := http.Get(s.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d, want 200", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
}
