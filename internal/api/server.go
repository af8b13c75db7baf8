// Package api exposes the scorecard analysis over HTTP.
package api

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gowoe/adapters/excel"
	"gowoe/adapters/render"
	"gowoe/app"
	"gowoe/domain/core"
	"gowoe/internal/config"
	"gowoe/internal/testkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Server hosts the analysis endpoints
type Server struct {
	router   *gin.Engine
	service  *app.ScorecardService
	renderer *render.MarkdownRenderer
	cfg      *config.Config
}

// NewServer wires the scorecard service into a gin router
func NewServer(service *app.ScorecardService, cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.GinMode)
	s := &Server{
		router:   gin.Default(),
		service:  service,
		renderer: render.NewMarkdownRenderer(),
		cfg:      cfg,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/demo", s.handleDemo)
	}
}

// Run starts the HTTP server on the configured port
func (s *Server) Run() error {
	addr := ":" + s.cfg.Server.Port
	log.Printf("[API] listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// analyzeRequest carries the non-file form fields of POST /api/analyze
type analyzeRequest struct {
	Outcome   string   `form:"outcome" binding:"required"`
	Variables []string `form:"variables"`
	Format    string   `form:"format"` // json (default), markdown or html
}

// handleAnalyze accepts a multipart upload (field "file", .xlsx or
// .csv), runs the WOE analysis against the named outcome column and
// returns the result in the requested format.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upload, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("woe-upload-%s%s", uuid.NewString(), filepath.Ext(upload.Filename)))
	if err := c.SaveUploadedFile(upload, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	defer os.Remove(tmpPath)

	tbl, err := excel.NewDataReader(tmpPath).Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	variables := make([]core.VariableKey, len(req.Variables))
	for i, v := range req.Variables {
		variables[i] = core.VariableKey(v)
	}

	result, err := s.service.Analyze(c.Request.Context(), tbl, core.VariableKey(req.Outcome), variables)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if core.IsInvalidInput(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.respond(c, req.Format, result)
}

// handleDemo runs the analysis on a deterministic synthetic credit
// table, handy for smoke-testing a deployment.
func (s *Server) handleDemo(c *gin.Context) {
	gen := testkit.NewCreditDataGenerator(testkit.DefaultCreditConfig())
	tbl := gen.Generate()

	variables := []core.VariableKey{
		"checking_status", "purpose", "housing",
		"duration_months", "credit_amount", "age",
	}
	result, err := s.service.Analyze(c.Request.Context(), tbl, "outcome", variables)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.respond(c, c.Query("format"), result)
}

func (s *Server) respond(c *gin.Context, format string, result *app.ScorecardResult) {
	switch format {
	case "", "json":
		c.JSON(http.StatusOK, result)
	case "markdown":
		report, err := s.renderer.RenderReport(result.Summary, result.Tables)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", report)
	case "html":
		report, err := s.renderer.RenderReport(result.Summary, result.Tables)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", render.ToHTML(report))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format %q", format)})
	}
}
