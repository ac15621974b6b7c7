package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/domain/port"
	"github.com/veriscan/veriscan-detection-service/internal/i18n"
	"github.com/veriscan/veriscan-detection-service/internal/usecase"
)

const (
	serviceName = "veriscan-detection-service"
	apiVersion  = "2.0.0"
)

// Server holds the wired use cases behind the public API.
type Server struct {
	video       *usecase.AnalyzeVideoUseCase
	image       *usecase.AnalyzeImageUseCase
	document    *usecase.AnalyzeDocumentUseCase
	url         *usecase.AnalyzeURLUseCase
	storage     port.MediaStorage
	health      port.HealthChecker
	localizer   *i18n.Localizer
	logger      *zap.Logger
	tempDir     string
	maxUploadMB int
}

type ServerConfig struct {
	TempDir     string
	MaxUploadMB int
}

func NewServer(
	video *usecase.AnalyzeVideoUseCase,
	image *usecase.AnalyzeImageUseCase,
	document *usecase.AnalyzeDocumentUseCase,
	url *usecase.AnalyzeURLUseCase,
	storage port.MediaStorage,
	health port.HealthChecker,
	localizer *i18n.Localizer,
	logger *zap.Logger,
	cfg ServerConfig,
) *Server {
	return &Server{
		video:       video,
		image:       image,
		document:    document,
		url:         url,
		storage:     storage,
		health:      health,
		localizer:   localizer,
		logger:      logger,
		tempDir:     cfg.TempDir,
		maxUploadMB: cfg.MaxUploadMB,
	}
}

// Router builds the public gin engine. CORS is wide open, matching the
// browser-facing deployments this API serves.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))
	r.MaxMultipartMemory = 32 << 20

	r.GET("/", s.handleRoot)

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/detect", s.handleDetectVideo)
		api.POST("/detect/image", s.handleDetectImage)
		api.POST("/detect/document", s.handleDetectDocument)
		api.POST("/detect/url", s.handleDetectURL)
		api.POST("/detect/object", s.handleDetectObject)
		api.GET("/languages", s.handleLanguages)
		api.GET("/translations/:lang", s.handleTranslations)
	}

	return r
}
