package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prediction-gateway/internal/common/config"
	"prediction-gateway/internal/common/logger"
	"prediction-gateway/internal/common/observability"
	"prediction-gateway/internal/gateway"
)

func testConfig(endpointURL string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:    "prediction-gateway",
			Version: "1.0.0",
		},
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Model: config.ModelConfig{
			EndpointURL:    endpointURL,
			AuthToken:      "test-token",
			RequestTimeout: 2,
		},
		Features: config.FeaturesConfig{
			Names:    []string{"age", "income", "score"},
			Defaults: map[string]float64{"income": 50000},
		},
	}
}

func newTestServer(t *testing.T, upstreamURL string) *Server {
	t.Helper()
	cfg := testConfig(upstreamURL)
	log := logger.NewTestLogger(t)

	schema := gateway.NewFeatureSchema(cfg.Features.Names, cfg.Features.Defaults)
	inv := gateway.NewInvoker(cfg.Model.EndpointURL, cfg.Model.AuthToken, cfg.Model.Timeout(), log)
	gw := gateway.New(schema, inv, log)

	return New(cfg, gw, &observability.Observability{}, log)
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestPredictEndpoint_Success(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"predictions": [0.87]}`))
	}))
	defer upstream.Close()

	s := newTestServer(t, upstream.URL)
	w := doJSON(t, s, http.MethodPost, "/predict", `{"age": 34, "income": 52000, "score": 0.7}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, 0.87, resp["prediction"])
}

func TestPredictEndpoint_ValidationError(t *testing.T) {
	s := newTestServer(t, "http://unused")

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "missing features",
			body:    `{"age": 34}`,
			message: "Missing required features: income, score",
		},
		{
			name:    "invalid feature value",
			body:    `{"age": true, "income": 1, "score": 2}`,
			message: "Invalid value for feature 'age': must be a number",
		},
		{
			name:    "empty object",
			body:    `{}`,
			message: "No data provided in request body",
		},
		{
			name:    "no body",
			body:    "",
			message: "No data provided in request body",
		},
		{
			name:    "malformed json",
			body:    `{not json`,
			message: "No data provided in request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s, http.MethodPost, "/predict", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.message, resp["error"])
		})
	}
}

func TestPredictEndpoint_ConnectionFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := upstream.URL
	upstream.Close()

	s := newTestServer(t, url)
	w := doJSON(t, s, http.MethodPost, "/predict", `{"age": 1, "income": 2, "score": 3}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "Network error while calling model endpoint:")
}

func TestPredictEndpoint_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Model unavailable"))
	}))
	defer upstream.Close()

	s := newTestServer(t, upstream.URL)
	w := doJSON(t, s, http.MethodPost, "/predict", `{"age": 1, "income": 2, "score": 3}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errMsg, _ := resp["error"].(string)
	assert.True(t, strings.HasPrefix(errMsg, "An error occurred: "))
	assert.Contains(t, errMsg, "503")
	assert.Contains(t, errMsg, "Model unavailable")
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		s := newTestServer(t, "http://model.internal/invocations")
		w := doJSON(t, s, http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp["status"])
		assert.Equal(t, "prediction-gateway", resp["app"])
		assert.Equal(t, "1.0.0", resp["version"])
	})

	t.Run("unhealthy without endpoint and token", func(t *testing.T) {
		s := newTestServer(t, "")
		s.cfg.Model.AuthToken = ""
		w := doJSON(t, s, http.MethodGet, "/health", "")

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp["status"])
		problems, ok := resp["errors"].([]interface{})
		require.True(t, ok)
		assert.Contains(t, problems, "MODEL_ENDPOINT_URL is not set")
		assert.Contains(t, problems, "MODEL_AUTH_TOKEN is not set")
	})
}

func TestHomeEndpoint(t *testing.T) {
	s := newTestServer(t, "http://model.internal/invocations")
	w := doJSON(t, s, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, name := range []string{"age", "income", "score"} {
		assert.Contains(t, body, name)
	}
}

func TestPredictEndpoint_Timeout(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(5 * time.Second):
		}
	}))
	defer upstream.Close()
	defer close(release)

	s := newTestServer(t, upstream.URL)
	s.cfg.Model.RequestTimeout = 1

	schema := gateway.NewFeatureSchema(s.cfg.Features.Names, s.cfg.Features.Defaults)
	inv := gateway.NewInvoker(upstream.URL, "t", 50*time.Millisecond, logger.NewTestLogger(t))
	s.gateway = gateway.New(schema, inv, logger.NewTestLogger(t))

	w := doJSON(t, s, http.MethodPost, "/predict", `{"age": 1, "income": 2, "score": 3}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "timed out")
}
