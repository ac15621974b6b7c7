package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/detection"
	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// Client calls an external model-serving endpoint over HTTP. The fake/real
// label mapping is resolved once here, from the model's own metadata, so no
// inference call ever trusts positional order blindly.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
	mapping detection.LabelMapping
	logger  *zap.Logger
}

type modelMetadata struct {
	Name   string   `json:"name"`
	Labels []string `json:"labels"`
}

type predictRequest struct {
	ImageB64 string `json:"image_b64,omitempty"`
	Text     string `json:"text,omitempty"`
}

type predictResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

// NewClient builds a client for one served model and resolves its label
// mapping. A metadata fetch failure is not fatal: the client falls back to
// the conventional 0=fake/1=real order and logs the degradation.
func NewClient(baseURL, model string, timeout time.Duration, logger *zap.Logger) *Client {
	c := &Client{
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}

	meta, err := c.fetchMetadata(context.Background())
	if err != nil {
		c.logger.Warn("could not fetch model metadata, assuming positional label order",
			zap.String("model", model),
			zap.Error(err),
		)
		c.mapping = detection.ResolveLabels(nil)
		return c
	}

	c.mapping = detection.ResolveLabels(meta.Labels)
	c.logger.Info("model label mapping resolved",
		zap.String("model", model),
		zap.Strings("labels", meta.Labels),
		zap.Int("fake_index", c.mapping.FakeIndex),
		zap.Int("real_index", c.mapping.RealIndex),
		zap.Bool("from_metadata", c.mapping.FromMetadata),
	)
	return c
}

// ClassifyFrame scores one decoded frame image.
func (c *Client) ClassifyFrame(ctx context.Context, image []byte) (entity.FrameScore, error) {
	return c.predict(ctx, predictRequest{ImageB64: base64.StdEncoding.EncodeToString(image)})
}

// ClassifyText scores one text chunk.
func (c *Client) ClassifyText(ctx context.Context, text string) (entity.FrameScore, error) {
	return c.predict(ctx, predictRequest{Text: text})
}

func (c *Client) predict(ctx context.Context, reqBody predictRequest) (entity.FrameScore, error) {
	var zero entity.FrameScore

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return zero, fmt.Errorf("marshal predict request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/models/%s/predict", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return zero, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", entity.ErrClassifierContract, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return zero, fmt.Errorf("%w: inference returned %d: %s", entity.ErrClassifierContract, resp.StatusCode, body)
	}

	var pr predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return zero, fmt.Errorf("%w: decode response: %v", entity.ErrClassifierContract, err)
	}
	if len(pr.Probabilities) != 2 {
		return zero, fmt.Errorf("%w: expected 2 probabilities, got %d", entity.ErrClassifierContract, len(pr.Probabilities))
	}

	score := entity.FrameScore{
		FakeProbability: pr.Probabilities[c.mapping.FakeIndex],
		RealProbability: pr.Probabilities[c.mapping.RealIndex],
	}
	if err := detection.ValidateScore(score); err != nil {
		return zero, err
	}
	return score, nil
}

func (c *Client) fetchMetadata(ctx context.Context) (*modelMetadata, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/v1/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata endpoint returned %d", resp.StatusCode)
	}

	var meta modelMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &meta, nil
}

// Healthy reports whether the model endpoint answers its metadata route.
func (c *Client) Healthy(ctx context.Context) bool {
	_, err := c.fetchMetadata(ctx)
	return err == nil
}
