// Package server wires the HTTP surface: student CRUD, the transcript
// extraction flow, operator auth and roster export.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studenthub-io/studenthub/internal/auth"
	"github.com/studenthub-io/studenthub/internal/export"
	"github.com/studenthub-io/studenthub/internal/llm"
	"github.com/studenthub-io/studenthub/internal/students"
)

type Server struct {
	store     *students.Store
	extractor llm.TranscriptExtractor
	auth      *auth.Store
	export    *export.Service
	logger    *slog.Logger
}

func New(store *students.Store, extractor llm.TranscriptExtractor, authStore *auth.Store, exportSvc *export.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:     store,
		extractor: extractor,
		auth:      authStore,
		export:    exportSvc,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(s.logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/students", s.listStudents)
		api.POST("/students", s.createStudent)
		api.GET("/students/:id", s.getStudent)
		api.PATCH("/students/:id", s.updateStudent)
		api.DELETE("/students/:id", s.deleteStudent)

		api.POST("/transcript/extract", s.extractTranscript)

		api.GET("/export/roster", s.exportRoster)

		api.POST("/auth/register", s.register)
		api.POST("/auth/login", s.login)
	}
	return r
}
