package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

func newTestServer(t *testing.T, labels []string, probs []float64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/models/deepfake-image-v2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"name": "deepfake-image-v2", "labels": labels})
	})
	mux.HandleFunc("POST /v1/models/deepfake-image-v2/predict", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"probabilities": probs})
	})
	return httptest.NewServer(mux)
}

func TestClassifyFrameWithMetadataOrder(t *testing.T) {
	// Labels put "real" first, so positionally probs[0] is real.
	srv := newTestServer(t, []string{"real", "fake"}, []float64{0.2, 0.8})
	defer srv.Close()

	client := NewClient(srv.URL, "deepfake-image-v2", 5*time.Second, zap.NewNop())

	score, err := client.ClassifyFrame(context.Background(), []byte("frame-bytes"))
	require.NoError(t, err)
	assert.InDelta(t, 0.8, score.FakeProbability, 1e-9)
	assert.InDelta(t, 0.2, score.RealProbability, 1e-9)
}

func TestClassifyFrameFallbackMapping(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/models/deepfake-image-v2/predict", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"probabilities": []float64{0.7, 0.3}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// Metadata route missing: client must assume index 0 is fake.
	client := NewClient(srv.URL, "deepfake-image-v2", 5*time.Second, zap.NewNop())

	score, err := client.ClassifyFrame(context.Background(), []byte("frame-bytes"))
	require.NoError(t, err)
	assert.InDelta(t, 0.7, score.FakeProbability, 1e-9)
	assert.InDelta(t, 0.3, score.RealProbability, 1e-9)
}

func TestClassifyTextSendsText(t *testing.T) {
	var gotText string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/models/ai-text-v1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"name": "ai-text-v1", "labels": []string{"ai", "human"}})
	})
	mux.HandleFunc("POST /v1/models/ai-text-v1/predict", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotText = body.Text
		json.NewEncoder(w).Encode(map[string]any{"probabilities": []float64{0.6, 0.4}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL, "ai-text-v1", 5*time.Second, zap.NewNop())

	score, err := client.ClassifyText(context.Background(), "some suspicious paragraph")
	require.NoError(t, err)
	assert.Equal(t, "some suspicious paragraph", gotText)
	assert.InDelta(t, 0.6, score.FakeProbability, 1e-9)
}

func TestClassifyFrameContractViolations(t *testing.T) {
	tests := []struct {
		name  string
		probs []float64
	}{
		{"wrong length", []float64{0.5}},
		{"does not sum to one", []float64{0.9, 0.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, []string{"fake", "real"}, tt.probs)
			defer srv.Close()

			client := NewClient(srv.URL, "deepfake-image-v2", 5*time.Second, zap.NewNop())

			_, err := client.ClassifyFrame(context.Background(), []byte("x"))
			assert.True(t, errors.Is(err, entity.ErrClassifierContract))
		})
	}
}

func TestClassifyFrameServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/models/deepfake-image-v2", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"labels": []string{"fake", "real"}})
	})
	mux.HandleFunc("POST /v1/models/deepfake-image-v2/predict", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL, "deepfake-image-v2", 5*time.Second, zap.NewNop())

	_, err := client.ClassifyFrame(context.Background(), []byte("x"))
	assert.True(t, errors.Is(err, entity.ErrClassifierContract))
}

func TestHealthy(t *testing.T) {
	srv := newTestServer(t, []string{"fake", "real"}, []float64{0.5, 0.5})
	client := NewClient(srv.URL, "deepfake-image-v2", 5*time.Second, zap.NewNop())
	assert.True(t, client.Healthy(context.Background()))

	srv.Close()
	assert.False(t, client.Healthy(context.Background()))
}
