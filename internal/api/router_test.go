package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/cobuy/internal/config"
	"github.com/timmy/cobuy/internal/domain"
	"github.com/timmy/cobuy/internal/engine"
	"github.com/timmy/cobuy/internal/logger"
	"github.com/timmy/cobuy/internal/service"
)

const scenarioCSV = "input,target\n1001,1002\n1001,1003\n1003,1002\n"

type memStore struct {
	mu   sync.Mutex
	recs []domain.Recommendation
	err  error
}

func (m *memStore) Create(ctx context.Context, rec *domain.Recommendation) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = uint(len(m.recs) + 1)
	m.recs = append(m.recs, *rec)
	return nil
}

func (m *memStore) ListRecent(ctx context.Context, limit int) ([]domain.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Recommendation{}
	for i := len(m.recs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, m.recs[i])
	}
	return out, nil
}

func (m *memStore) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.recs)), nil
}

// fixedEngine answers every query with the same products.
type fixedEngine struct {
	*engine.Engine
	answer []int
}

func (f *fixedEngine) Predict(inputs []int) ([]int, error) {
	return f.answer, nil
}

func newTestRouter(t *testing.T, rec service.Recommender, store *memStore) *gin.Engine {
	t.Helper()
	log := logger.New(&logger.Config{Output: io.Discard})
	svc := service.NewRecommendationService(rec, store, log, nil)
	return SetupRouter(svc, &config.ServerConfig{Mode: "test", CORS: config.CORSConfig{AllowAllOrigins: true}}, log)
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func ids(t *testing.T, v interface{}) []int {
	t.Helper()
	raw, ok := v.([]interface{})
	require.True(t, ok, "expected JSON array, got %T", v)
	out := make([]int, len(raw))
	for i, x := range raw {
		out[i] = int(x.(float64))
	}
	return out
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, engine.New(), &memStore{})

	w, body := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, false, body["trained"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRecommend(t *testing.T) {
	store := &memStore{}
	r := newTestRouter(t, engine.New(engine.WithDefaultDataset(scenarioCSV)), store)

	w, body := do(t, r, http.MethodPost, "/api/v1/recommendations", gin.H{"input": []int{1001, 1003}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{1001, 1003}, ids(t, body["input"]))
	assert.Equal(t, []int{1002}, ids(t, body["suggested"]))
	assert.Len(t, store.recs, 1)

	w, body = do(t, r, http.MethodPost, "/api/v1/recommendations", gin.H{"input": []int{9999}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{}, ids(t, body["suggested"]))
}

func TestRecommend_BadRequests(t *testing.T) {
	r := newTestRouter(t, engine.New(engine.WithDefaultDataset(scenarioCSV)), &memStore{})

	for name, body := range map[string]interface{}{
		"empty list":    gin.H{"input": []int{}},
		"missing field": gin.H{},
		"wrong type":    gin.H{"input": "1001"},
	} {
		t.Run(name, func(t *testing.T) {
			w, decoded := do(t, r, http.MethodPost, "/api/v1/recommendations", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decoded["error"], "Invalid request")
		})
	}
}

func TestRecommend_EmptyModel(t *testing.T) {
	r := newTestRouter(t, engine.New(engine.WithDefaultDataset("input,target\n")), &memStore{})

	w, body := do(t, r, http.MethodPost, "/api/v1/recommendations", gin.H{"input": []int{1001}})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, body["error"], "not trained")
}

func TestRecommend_StoreFailure(t *testing.T) {
	r := newTestRouter(t, engine.New(engine.WithDefaultDataset(scenarioCSV)), &memStore{err: errors.New("db down")})

	w, _ := do(t, r, http.MethodPost, "/api/v1/recommendations", gin.H{"input": []int{1001}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecommend_InjectedEngine(t *testing.T) {
	eng := &fixedEngine{Engine: engine.New(engine.WithDefaultDataset(scenarioCSV)), answer: []int{1005}}
	require.NoError(t, eng.Train())
	r := newTestRouter(t, eng, &memStore{})

	w, body := do(t, r, http.MethodPost, "/api/v1/recommendations", gin.H{"input": []int{1001, 1003}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{1005}, ids(t, body["suggested"]))
}

func TestTrainAndProducts(t *testing.T) {
	r := newTestRouter(t, engine.New(engine.WithDefaultDataset(scenarioCSV)), &memStore{})

	w, body := do(t, r, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, body["error"], "not trained")

	w, body = do(t, r, http.MethodGet, "/api/v1/train", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Model trained", body["message"])
	assert.Equal(t, []int{1001, 1002, 1003}, ids(t, body["products"]))

	w, body = do(t, r, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{1001, 1002, 1003}, ids(t, body["products"]))
	assert.EqualValues(t, 3, body["total"])
}

func TestUploadCSV(t *testing.T) {
	eng := engine.New()
	r := newTestRouter(t, eng, &memStore{})

	w, body := do(t, r, http.MethodPost, "/api/v1/upload-csv", gin.H{"csv_data": "input,target\n5,6\n5,7\n"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{5, 6, 7}, ids(t, body["products"]))
	assert.Equal(t, engine.SourceUploaded, eng.State().Source)

	w, body = do(t, r, http.MethodPost, "/api/v1/recommendations", gin.H{"input": []int{5}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{6, 7}, ids(t, body["suggested"]))
}

func TestUploadCSV_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		body    interface{}
		wantErr string
	}{
		{name: "missing field", body: gin.H{}, wantErr: "csv_data"},
		{name: "bad header", body: gin.H{"csv_data": "a,b\n1,2"}, wantErr: "must start with"},
		{name: "bad line", body: gin.H{"csv_data": "input,target\n1,x\n"}, wantErr: "line 2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(t, engine.New(), &memStore{})
			w, body := do(t, r, http.MethodPost, "/api/v1/upload-csv", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, body["error"], tc.wantErr)
		})
	}
}

func TestHistoryAndStats(t *testing.T) {
	r := newTestRouter(t, engine.New(engine.WithDefaultDataset(scenarioCSV)), &memStore{})

	for _, input := range [][]int{{1001}, {1003}} {
		w, _ := do(t, r, http.MethodPost, "/api/v1/recommendations", gin.H{"input": input})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, body := do(t, r, http.MethodGet, "/api/v1/recommendations?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["total"])

	w, _ = do(t, r, http.MethodGet, "/api/v1/recommendations?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(t, r, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["is_trained"])
	model, ok := body["model"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, model, "trained_at")
	assert.Equal(t, "default", body["dataset_source"])
	assert.EqualValues(t, 2, body["served_recommendations"])
}

func TestStats_Untrained(t *testing.T) {
	r := newTestRouter(t, engine.New(), &memStore{})

	w, body := do(t, r, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["is_trained"])
	model, ok := body["model"].(map[string]interface{})
	require.True(t, ok)
	assert.NotContains(t, model, "trained_at")
	assert.EqualValues(t, 0, model["products"])
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t, engine.New(), &memStore{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
