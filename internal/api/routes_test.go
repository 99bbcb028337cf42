package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/reelpack/reelpack-agent/internal/bundle"
	"github.com/reelpack/reelpack-agent/internal/exports"
	"github.com/reelpack/reelpack-agent/internal/metadata"
)

type fakeRepo struct {
	mu       sync.Mutex
	runs     []*exports.Run
	config   map[string]string
	failRead bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{config: map[string]string{"auth_token": "test-token"}}
}

func (f *fakeRepo) CreateRun(ctx context.Context, run *exports.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append([]*exports.Run{run}, f.runs...)
	return nil
}

func (f *fakeRepo) GetRun(ctx context.Context, id string) (*exports.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, run := range f.runs {
		if run.ID == id {
			return run, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListRuns(ctx context.Context, limit int) ([]*exports.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return nil, errors.New("database is locked")
	}
	if len(f.runs) > limit {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

func (f *fakeRepo) CountRuns(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return 0, errors.New("database is locked")
	}
	return len(f.runs), nil
}

func (f *fakeRepo) GetConfig(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.config[key], nil
}

func (f *fakeRepo) SetConfig(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.config[key] = value
	return nil
}

func testServerConfig(repo exports.Repository) ServerConfig {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ServerConfig{
		Packager:   bundle.NewPackager("", metadata.NewStubProcessor(logger), logger),
		Repository: repo,
		Logger:     logger,
		StartTime:  time.Now(),
		DeviceID:   "test-device",
	}
}

func decodeJSONBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response unmarshal error: %v", err)
	}
	return body
}

func TestRouter_HealthIsOpen(t *testing.T) {
	router := NewRouter(testServerConfig(newFakeRepo()))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", rr.Code, http.StatusOK)
	}

	body := decodeJSONBody(t, rr)
	if body["status"] != "ok" {
		t.Fatalf("health body = %v", body)
	}
}

func TestRouter_StatusRequiresAuth(t *testing.T) {
	router := NewRouter(testServerConfig(newFakeRepo()))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestStatusHandler_Empty(t *testing.T) {
	cfg := testServerConfig(newFakeRepo())

	rr := httptest.NewRecorder()
	statusHandler(cfg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	body := decodeJSONBody(t, rr)
	if body["state"] != "idle" {
		t.Fatalf("state = %v, want idle", body["state"])
	}
	if _, ok := body["last_run"]; ok {
		t.Fatal("last_run should be omitted with no recorded runs")
	}
}

func TestStatusHandler_DegradedAfterErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.CreateRun(context.Background(), &exports.Run{
		ID:            "run1",
		BundleName:    "Queue_20260101_000000",
		ArtifactCount: 2,
		ErrorCount:    1,
		CreatedAt:     time.Now(),
	})
	cfg := testServerConfig(repo)

	rr := httptest.NewRecorder()
	statusHandler(cfg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	body := decodeJSONBody(t, rr)
	if body["state"] != "degraded" {
		t.Fatalf("state = %v, want degraded", body["state"])
	}
}

func TestStatusHandler_RepositoryFailureIs500(t *testing.T) {
	repo := newFakeRepo()
	repo.failRead = true
	cfg := testServerConfig(repo)

	rr := httptest.NewRecorder()
	statusHandler(cfg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusInternalServerError)
	}

	body := decodeJSONBody(t, rr)
	if body["code"] != "INTERNAL_ERROR" {
		t.Fatalf("error code = %v, want INTERNAL_ERROR", body["code"])
	}
}

func TestGetRunHandler_NotFound(t *testing.T) {
	router := NewRouter(testServerConfig(newFakeRepo()))

	req := httptest.NewRequest(http.MethodGet, "/exports/nope", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
