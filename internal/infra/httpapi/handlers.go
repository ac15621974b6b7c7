package httpapi

import (
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
	"github.com/veriscan/veriscan-detection-service/internal/i18n"
	"github.com/veriscan/veriscan-detection-service/internal/usecase"
)

var (
	videoExtensions    = map[string]bool{".mp4": true, ".avi": true, ".mov": true, ".mkv": true, ".webm": true}
	imageExtensions    = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".bmp": true}
	documentExtensions = map[string]bool{".pdf": true, ".docx": true, ".doc": true, ".txt": true}
)

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"message": "AI Media Detection API is running",
		"service": serviceName,
		"version": apiVersion,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	classifierHealthy := s.health.Healthy(c.Request.Context())

	status := "healthy"
	code := http.StatusOK
	if !classifierHealthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":             status,
		"classifier_healthy": classifierHealthy,
		"version":            apiVersion,
	})
}

func (s *Server) handleDetectVideo(c *gin.Context) {
	params, err := parseParams(c)
	if err != nil {
		s.respondError(c, err, params.Language)
		return
	}

	path, filename, ok := s.saveUpload(c, videoExtensions, params.Language)
	if !ok {
		return
	}
	defer os.Remove(path)

	result, err := s.video.Execute(c.Request.Context(), path, usecase.VideoParams{
		Threshold: params.Threshold,
		MaxFrames: params.MaxFrames,
	})
	if err != nil {
		s.respondError(c, err, params.Language)
		return
	}

	ctx := c.Request.Context()
	verdict := result.Verdict
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"language":      params.Language,
		"language_name": i18n.LanguageName(params.Language),
		"video_info": gin.H{
			"filename":         filename,
			"duration_seconds": round2(result.Media.Duration),
			"fps":              round2(result.Media.FPS),
			"resolution":       fmt.Sprintf("%dx%d", result.Media.Width, result.Media.Height),
			"has_audio":        result.Media.HasAudio,
		},
		"detection_result": gin.H{
			"is_ai_generated":  verdict.IsAIGenerated,
			"confidence_score": verdict.ConfidenceScore,
			"frames_analyzed":  verdict.FramesAnalyzed,
		},
		"detailed_analysis": gin.H{
			"avg_fake_probability":    verdict.AvgFakeProbability,
			"avg_real_probability":    verdict.AvgRealProbability,
			"max_fake_probability":    verdict.MaxFakeProbability,
			"median_fake_probability": verdict.MedianFakeProb,
			"std_fake_probability":    verdict.StdFakeProbability,
			"fake_frame_ratio":        verdict.FakeFrameRatio,
		},
		"message":          s.localizer.DetectionMessage(ctx, verdict.IsAIGenerated, verdict.ConfidenceScore, params.Language),
		"warning":          s.localizer.WarningMessage(ctx, verdict.IsAIGenerated, params.Language),
		"confidence_label": s.localizer.Message(ctx, "confidence", params.Language, i18n.CategoryUI),
	})
}

func (s *Server) handleDetectImage(c *gin.Context) {
	params, err := parseParams(c)
	if err != nil {
		s.respondError(c, err, params.Language)
		return
	}

	path, filename, ok := s.saveUpload(c, imageExtensions, params.Language)
	if !ok {
		return
	}
	defer os.Remove(path)

	image, err := os.ReadFile(path)
	if err != nil {
		s.respondError(c, err, params.Language)
		return
	}

	verdict, err := s.image.Execute(c.Request.Context(), image, params.Threshold)
	if err != nil {
		s.respondError(c, err, params.Language)
		return
	}

	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"language":      params.Language,
		"language_name": i18n.LanguageName(params.Language),
		"image_info": gin.H{
			"filename": filename,
		},
		"detection_result": gin.H{
			"is_ai_generated":  verdict.IsAIGenerated,
			"confidence_score": verdict.ConfidenceScore,
		},
		"detailed_analysis": gin.H{
			"fake_probability": verdict.FakeProbability,
			"real_probability": verdict.RealProbability,
		},
		"message":          s.localizer.DetectionMessage(ctx, verdict.IsAIGenerated, verdict.ConfidenceScore, params.Language),
		"warning":          s.localizer.WarningMessage(ctx, verdict.IsAIGenerated, params.Language),
		"confidence_label": s.localizer.Message(ctx, "confidence", params.Language, i18n.CategoryUI),
	})
}

func (s *Server) handleDetectDocument(c *gin.Context) {
	params, err := parseParams(c)
	if err != nil {
		s.respondError(c, err, params.Language)
		return
	}

	path, filename, ok := s.saveUpload(c, documentExtensions, params.Language)
	if !ok {
		return
	}
	defer os.Remove(path)

	result, err := s.document.Execute(c.Request.Context(), path, params.Threshold)
	if err != nil {
		s.respondError(c, err, params.Language)
		return
	}

	ctx := c.Request.Context()
	verdict := result.Verdict
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"language":      params.Language,
		"language_name": i18n.LanguageName(params.Language),
		"document_info": gin.H{
			"filename":        filename,
			"file_type":       result.Info.FileType,
			"word_count":      result.Info.WordCount,
			"character_count": result.Info.CharacterCount,
			"sentence_count":  result.Info.SentenceCount,
		},
		"detection_result": gin.H{
			"is_ai_generated":  verdict.IsAIGenerated,
			"confidence_score": verdict.ConfidenceScore,
			"chunks_analyzed":  verdict.ChunksAnalyzed,
		},
		"detailed_analysis": gin.H{
			"avg_ai_probability":    verdict.AvgFakeProbability,
			"avg_human_probability": verdict.AvgRealProbability,
		},
		"message":          s.localizer.DetectionMessage(ctx, verdict.IsAIGenerated, verdict.ConfidenceScore, params.Language),
		"warning":          s.localizer.WarningMessage(ctx, verdict.IsAIGenerated, params.Language),
		"confidence_label": s.localizer.Message(ctx, "confidence", params.Language, i18n.CategoryUI),
	})
}

type detectURLRequest struct {
	URL       string   `json:"url" binding:"required"`
	Language  string   `json:"language"`
	Threshold *float64 `json:"threshold"`
}

func (s *Server) handleDetectURL(c *gin.Context) {
	var req detectURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"code":    "invalid_url",
			"error":   s.localizer.ErrorMessage(c.Request.Context(), "invalid_url", i18n.DefaultLanguage),
			"detail":  err.Error(),
		})
		return
	}
	lang := req.Language
	if lang == "" {
		lang = i18n.DefaultLanguage
	}

	result, err := s.url.Execute(c.Request.Context(), req.URL, req.Threshold)
	if err != nil {
		s.respondError(c, err, lang)
		return
	}

	s.respondURLAnalysis(c, result, lang)
}

func (s *Server) respondURLAnalysis(c *gin.Context, result *usecase.URLAnalysis, lang string) {
	ctx := c.Request.Context()
	body := gin.H{
		"success":       true,
		"language":      lang,
		"language_name": i18n.LanguageName(lang),
		"media_type":    result.MediaType(),
		"source_info": gin.H{
			"filename": result.Download.Filename,
			"size_mb":  result.Download.SizeMB,
			"kind":     result.Download.Kind,
			"title":    result.Download.Title,
			"platform": result.Download.Platform,
		},
	}

	var isAI bool
	var confidence float64
	if result.Document != nil {
		verdict := result.Document.Verdict
		isAI, confidence = verdict.IsAIGenerated, verdict.ConfidenceScore
		body["document_info"] = result.Document.Info
		body["detection_result"] = gin.H{
			"is_ai_generated":  verdict.IsAIGenerated,
			"confidence_score": verdict.ConfidenceScore,
			"chunks_analyzed":  verdict.ChunksAnalyzed,
		}
	} else {
		verdict := result.Video.Verdict
		isAI, confidence = verdict.IsAIGenerated, verdict.ConfidenceScore
		body["video_info"] = result.Video.Media
		body["detection_result"] = gin.H{
			"is_ai_generated":  verdict.IsAIGenerated,
			"confidence_score": verdict.ConfidenceScore,
			"frames_analyzed":  verdict.FramesAnalyzed,
		}
		body["detailed_analysis"] = gin.H{
			"avg_fake_probability": verdict.AvgFakeProbability,
			"avg_real_probability": verdict.AvgRealProbability,
		}
	}

	body["message"] = s.localizer.DetectionMessage(ctx, isAI, confidence, lang)
	body["warning"] = s.localizer.WarningMessage(ctx, isAI, lang)
	body["confidence_label"] = s.localizer.Message(ctx, "confidence", lang, i18n.CategoryUI)

	c.JSON(http.StatusOK, body)
}

type detectObjectRequest struct {
	ObjectKey string   `json:"object_key" binding:"required"`
	Language  string   `json:"language"`
	Threshold *float64 `json:"threshold"`
}

func (s *Server) handleDetectObject(c *gin.Context) {
	var req detectObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	lang := req.Language
	if lang == "" {
		lang = i18n.DefaultLanguage
	}

	if s.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "object storage is not configured",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(req.ObjectKey))
	path := filepath.Join(s.tempDir, "object_"+uuid.NewString()+ext)
	if err := s.storage.FetchMedia(c.Request.Context(), req.ObjectKey, path); err != nil {
		s.logger.Error("object fetch failed", zap.String("object_key", req.ObjectKey), zap.Error(err))
		s.respondError(c, err, lang)
		return
	}
	defer os.Remove(path)

	if documentExtensions[ext] {
		result, err := s.document.Execute(c.Request.Context(), path, req.Threshold)
		if err != nil {
			s.respondError(c, err, lang)
			return
		}
		s.respondURLAnalysis(c, &usecase.URLAnalysis{
			Download: objectDownloadInfo(req.ObjectKey, path),
			Document: result,
		}, lang)
		return
	}

	result, err := s.video.Execute(c.Request.Context(), path, usecase.VideoParams{Threshold: req.Threshold})
	if err != nil {
		s.respondError(c, err, lang)
		return
	}
	s.respondURLAnalysis(c, &usecase.URLAnalysis{
		Download: objectDownloadInfo(req.ObjectKey, path),
		Video:    result,
	}, lang)
}

// objectDownloadInfo describes an object-storage fetch in the same shape as
// a URL download so both reuse the response writer.
func objectDownloadInfo(objectKey, path string) *entity.DownloadInfo {
	info := &entity.DownloadInfo{
		Path:     path,
		Filename: filepath.Base(objectKey),
		Kind:     entity.URLKindUnknown,
	}
	if stat, err := os.Stat(path); err == nil {
		info.SizeMB = math.Round(float64(stat.Size())/(1024*1024)*100) / 100
	}
	return info
}

func (s *Server) handleLanguages(c *gin.Context) {
	langs := i18n.SupportedLanguages()
	c.JSON(http.StatusOK, gin.H{
		"languages": langs,
		"total":     len(langs),
		"default":   i18n.DefaultLanguage,
	})
}

func (s *Server) handleTranslations(c *gin.Context) {
	lang := c.Param("lang")
	if !i18n.IsSupported(lang) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   fmt.Sprintf("unsupported language %q", lang),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"language":      lang,
		"language_name": i18n.LanguageName(lang),
		"translations":  s.localizer.AllTranslations(c.Request.Context(), lang),
	})
}

// saveUpload validates and persists the multipart "file" field into the temp
// directory. On failure it writes the error response itself and returns
// ok=false.
func (s *Server) saveUpload(c *gin.Context, allowed map[string]bool, lang string) (path, filename string, ok bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"code":    "invalid_format",
			"error":   s.localizer.ErrorMessage(c.Request.Context(), "invalid_format", lang),
			"detail":  "missing multipart field \"file\"",
		})
		return "", "", false
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"code":    "invalid_format",
			"error":   s.localizer.ErrorMessage(c.Request.Context(), "invalid_format", lang),
			"detail":  fmt.Sprintf("extension %q not allowed (%s)", ext, extList(allowed)),
		})
		return "", "", false
	}

	if file.Size > int64(s.maxUploadMB)*1024*1024 {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"success": false,
			"code":    "file_too_large",
			"error":   s.localizer.ErrorMessage(c.Request.Context(), "file_too_large", lang),
			"detail":  fmt.Sprintf("upload is limited to %d MB", s.maxUploadMB),
		})
		return "", "", false
	}

	dest := filepath.Join(s.tempDir, "upload_"+uuid.NewString()+ext)
	if err := s.saveFile(file, dest); err != nil {
		s.logger.Error("failed to persist upload", zap.Error(err))
		s.respondError(c, err, lang)
		return "", "", false
	}
	return dest, file.Filename, true
}

func (s *Server) saveFile(file *multipart.FileHeader, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.ReadFrom(src)
	return err
}

func extList(allowed map[string]bool) string {
	exts := make([]string, 0, len(allowed))
	for ext := range allowed {
		exts = append(exts, ext)
	}
	return strings.Join(exts, " ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
