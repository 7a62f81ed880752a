// Package web exposes run reports over a small read-only HTTP API so
// operators can see which users failed without shelling into the host.
package web

import (
	"github.com/gin-gonic/gin"
)

// Server is the report API server
type Server struct {
	historyDir string
	limit      int
	router     *gin.Engine
}

// NewServer creates a server reading run reports from historyDir
func NewServer(historyDir string, limit int) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	s := &Server{
		historyDir: historyDir,
		limit:      limit,
		router:     router,
	}

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api")
	{
		api.GET("/runs", s.handleRuns)
		api.GET("/runs/latest", s.handleLatestRun)
	}

	return s
}

// Run starts the report API server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
