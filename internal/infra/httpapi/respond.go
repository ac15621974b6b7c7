package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
	"github.com/veriscan/veriscan-detection-service/internal/i18n"
)

// errBadParam marks malformed request parameters that never reach the
// pipeline.
var errBadParam = errors.New("invalid request parameter")

// requestParams are the knobs every detect endpoint accepts. Threshold is
// nil when the request did not send one, so an explicit 0 stays 0 instead
// of falling back to the configured default.
type requestParams struct {
	Language  string
	Threshold *float64
	MaxFrames int
}

// parseParams reads language/threshold/max_frames from query or form values.
// A malformed number is rejected here so the pipeline only ever sees valid
// overrides.
func parseParams(c *gin.Context) (requestParams, error) {
	p := requestParams{Language: i18n.DefaultLanguage}

	if lang := pick(c, "language"); lang != "" {
		p.Language = lang
	}
	if raw := pick(c, "threshold"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, entity.ErrInvalidThreshold
		}
		p.Threshold = &v
	}
	if raw := pick(c, "max_frames"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return p, fmt.Errorf("%w: max_frames must be a non-negative integer", errBadParam)
		}
		p.MaxFrames = v
	}
	return p, nil
}

func pick(c *gin.Context, key string) string {
	if v := c.Query(key); v != "" {
		return v
	}
	return c.PostForm(key)
}

// respondError maps a pipeline error to a status code and a localized body.
func (s *Server) respondError(c *gin.Context, err error, lang string) {
	status, key := classifyError(err)
	c.JSON(status, gin.H{
		"success": false,
		"code":    key,
		"error":   s.localizer.ErrorMessage(c.Request.Context(), key, lang),
		"detail":  err.Error(),
	})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrInvalidThreshold):
		return http.StatusBadRequest, "invalid_threshold"
	case errors.Is(err, errBadParam):
		return http.StatusBadRequest, "processing_failed"
	case errors.Is(err, entity.ErrUnsupportedFormat):
		return http.StatusBadRequest, "invalid_format"
	case errors.Is(err, entity.ErrInvalidURL):
		return http.StatusBadRequest, "invalid_url"
	case errors.Is(err, entity.ErrNoFrames):
		return http.StatusUnprocessableEntity, "no_frames"
	case errors.Is(err, entity.ErrNoText), errors.Is(err, entity.ErrEmptyInput):
		return http.StatusUnprocessableEntity, "no_text"
	case errors.Is(err, entity.ErrClassifierContract):
		return http.StatusBadGateway, "processing_failed"
	default:
		return http.StatusInternalServerError, "processing_failed"
	}
}
