package router

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"cashflow/internal/config"
	"cashflow/internal/handler"
	"cashflow/internal/metrics"
	"cashflow/internal/middleware"
	"cashflow/internal/repository"
	"cashflow/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, templates and static resources.
func SetupRouter(cfg *config.Config, db *gorm.DB, logger *slog.Logger) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(logger), gin.Recovery())

	if cfg.Metrics.Enabled {
		m := metrics.New()
		r.Use(m.Middleware())
		r.GET("/metrics", m.Handler())
	}

	// static files and templates
	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(staticFS))

	if cfg.Templates.Enabled {
		tmpl, err := template.ParseFS(web.FS, "templates/*.html")
		if err != nil {
			return nil, fmt.Errorf("parse templates: %w", err)
		}
		r.SetHTMLTemplate(tmpl)
	}

	entryHandler := handler.NewEntryHandler(repository.NewEntryStore(db), logger)
	pageHandler := handler.NewPageHandler(entryHandler, cfg.Templates.Enabled)

	r.GET("/", pageHandler.Index)
	r.GET("/healthz", entryHandler.Health)

	// ====== API ======
	api := r.Group("/api")

	api.POST("/entries", entryHandler.CreateEntry)
	api.GET("/entries", entryHandler.ListEntries)
	api.GET("/entries/:id", entryHandler.GetEntry)
	api.PATCH("/entries/:id", entryHandler.UpdateEntry)
	api.DELETE("/entries/:id", entryHandler.DeleteEntry)

	api.GET("/summary", entryHandler.GetSummary)
	api.GET("/export/csv", entryHandler.ExportCSV)
	api.GET("/export/xlsx", entryHandler.ExportXLSX)

	return r, nil
}
