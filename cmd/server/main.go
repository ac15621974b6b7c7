package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/domain/port"
	"github.com/veriscan/veriscan-detection-service/internal/i18n"
	"github.com/veriscan/veriscan-detection-service/internal/infra/config"
	"github.com/veriscan/veriscan-detection-service/internal/infra/document"
	"github.com/veriscan/veriscan-detection-service/internal/infra/download"
	"github.com/veriscan/veriscan-detection-service/internal/infra/ffmpeg"
	"github.com/veriscan/veriscan-detection-service/internal/infra/httpapi"
	"github.com/veriscan/veriscan-detection-service/internal/infra/inference"
	"github.com/veriscan/veriscan-detection-service/internal/infra/metrics"
	miniostorage "github.com/veriscan/veriscan-detection-service/internal/infra/minio"
	"github.com/veriscan/veriscan-detection-service/internal/infra/postgres"
	"github.com/veriscan/veriscan-detection-service/internal/infra/rabbitmq"
	"github.com/veriscan/veriscan-detection-service/internal/infra/tracing"
	"github.com/veriscan/veriscan-detection-service/internal/infra/translate"
	"github.com/veriscan/veriscan-detection-service/internal/usecase"
	"github.com/veriscan/veriscan-detection-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting veriscan-detection-service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fatalOnErr(os.MkdirAll(cfg.TempDir, 0o755), "create temp dir")

	// Tracing (non-fatal if the collector is unavailable)
	tp, err := tracing.InitTracer(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
	} else {
		defer tp.Shutdown(ctx)
	}

	// Translation cache: memory always, postgres layered in when configured
	var cache port.TranslationCache = translate.NewMemoryCache()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		fatalOnErr(err, "connect to postgres")
		defer pool.Close()

		durable := postgres.NewTranslationCache(pool, log)
		fatalOnErr(durable.EnsureSchema(ctx), "ensure translation cache schema")
		cache = translate.NewTieredCache(translate.NewMemoryCache(), durable)
		log.Info("durable translation cache enabled")
	}

	var translator port.Translator
	if cfg.TranslateAPIKey != "" {
		gt, err := translate.NewGoogleTranslator(ctx, cfg.TranslateAPIKey, log)
		fatalOnErr(err, "create translator")
		defer gt.Close()
		translator = gt
		log.Info("translation enabled")
	} else {
		log.Warn("TRANSLATE_API_KEY not set, responses fall back to English")
	}
	localizer := i18n.NewLocalizer(translator, cache, log)

	// Optional object storage
	var storage port.MediaStorage
	if cfg.MinIOEnabled {
		s, err := miniostorage.NewStorage(miniostorage.StorageConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.MinIOBucket,
		})
		fatalOnErr(err, "create minio storage")
		fatalOnErr(s.EnsureBucket(ctx), "ensure minio bucket")
		storage = s
		log.Info("object storage enabled", zap.String("bucket", cfg.MinIOBucket))
	}

	// Optional verdict event stream
	var publisher port.VerdictPublisher
	if cfg.RabbitMQEnabled {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		fatalOnErr(err, "connect to rabbitmq")
		defer conn.Close()

		pub, err := rabbitmq.NewVerdictPublisher(conn, cfg.RabbitMQExchange)
		fatalOnErr(err, "create verdict publisher")
		defer pub.Close()
		publisher = pub
		log.Info("verdict event stream enabled", zap.String("exchange", cfg.RabbitMQExchange))
	}

	// Classifier clients
	inferenceTimeout := time.Duration(cfg.InferenceTimeoutSec) * time.Second
	imageClient := inference.NewClient(cfg.InferenceURL, cfg.ImageModel, inferenceTimeout, log)
	textClient := inference.NewClient(cfg.InferenceURL, cfg.TextModel, inferenceTimeout, log)

	// Media adapters
	prober := ffmpeg.NewProber()
	extractor := ffmpeg.NewExtractor(cfg.FrameFormat, log)
	audio := ffmpeg.NewAudioExtractor(log)
	docExtractor := document.NewExtractor(log)
	downloader := download.NewDownloader(cfg.YtDlpPath, int(cfg.MaxUploadMB), log)

	// Use cases
	videoUC := usecase.NewAnalyzeVideoUseCase(prober, extractor, audio, imageClient, publisher, log, usecase.AnalyzeVideoConfig{
		TempDir:      cfg.TempDir,
		MaxFrames:    cfg.MaxFrames,
		Threshold:    cfg.Threshold,
		ExtractAudio: cfg.ExtractAudio,
	})
	imageUC := usecase.NewAnalyzeImageUseCase(imageClient, publisher, log, cfg.Threshold)
	documentUC := usecase.NewAnalyzeDocumentUseCase(docExtractor, textClient, publisher, log, usecase.AnalyzeDocumentConfig{
		ChunkWords: cfg.ChunkWords,
		MaxChunks:  cfg.MaxTextChunks,
		Threshold:  cfg.Threshold,
	})
	urlUC := usecase.NewAnalyzeURLUseCase(downloader, videoUC, documentUC, log, cfg.TempDir)

	server := httpapi.NewServer(videoUC, imageUC, documentUC, urlUC, storage, imageClient, localizer, log, httpapi.ServerConfig{
		TempDir:     cfg.TempDir,
		MaxUploadMB: int(cfg.MaxUploadMB),
	})

	metricsSrv := metrics.StartServer(cfg.MetricsPort, log)

	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Router(),
	}

	go func() {
		log.Info("api server starting", zap.Int("port", cfg.Port))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("api server error", zap.Error(err))
			cancel()
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("api server shutdown error", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("metrics server shutdown error", zap.Error(err))
	}

	log.Info("veriscan-detection-service stopped")
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
