package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fabzclean/backend/internal/config"
	"github.com/fabzclean/backend/internal/db"
	"github.com/fabzclean/backend/internal/http/handlers"
	"github.com/fabzclean/backend/internal/http/middleware"
	"github.com/fabzclean/backend/internal/service"

	_ "github.com/fabzclean/backend/docs"
)

func Router(cfg config.Config, store *db.Store, summary *service.SummaryService, recalc *service.RecalcService, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:             store,
		Summary:           summary,
		Recalc:            recalc,
		Validator:         validator.New(),
		Logger:            logger,
		AdminKey:          cfg.AdminKey,
		DefaultWindowDays: cfg.DefaultWindowDays,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/bi/summary", h.BISummary)
		api.GET("/bi/runs/latest", h.RunsLatest)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/bi/recalculate", h.Recalculate)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
