// Package server exposes the gateway over HTTP: the prediction API, the
// health check, the input form, and the metrics endpoint.
package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prediction-gateway/internal/common/config"
	"prediction-gateway/internal/common/logger"
	"prediction-gateway/internal/common/observability"
	"prediction-gateway/internal/gateway"
)

//go:embed templates/index.html
var templateFS embed.FS

type Server struct {
	engine  *gin.Engine
	cfg     *config.Config
	gateway *gateway.Gateway
	obs     *observability.Observability
	logger  logger.Logger
}

func New(cfg *config.Config, gw *gateway.Gateway, obs *observability.Observability, log logger.Logger) *Server {
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine:  gin.New(),
		cfg:     cfg,
		gateway: gw,
		obs:     obs,
		logger: log.With(map[string]interface{}{
			"component": "server",
		}),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(s.requestLogger())

	tmpl := template.Must(template.ParseFS(templateFS, "templates/index.html"))
	s.engine.SetHTMLTemplate(tmpl)

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.Home)
	s.engine.POST("/predict", s.Predict)
	s.engine.GET("/health", s.Health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Handler returns the router for an http.Server or a test client.
func (s *Server) Handler() http.Handler {
	return s.engine
}
