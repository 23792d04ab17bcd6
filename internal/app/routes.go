package app

import (
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/cache"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/config"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/handlers"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/repo"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/service"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, log zerolog.Logger, db *pgxpool.Pool, rdb *redis.Client, files *upload.Store) {
	r.GET("/", rootHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	api := r.Group("/api")
	api.GET("/health", healthHandler())

	todoRepo := repo.NewPGTodoRepo(db)
	var todoCache *cache.TodoCache
	if rdb != nil {
		todoCache = cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration())
	}
	todoSvc := service.NewTodoService(todoRepo, files, todoCache)
	todoHandler := handlers.NewTodoHandler(todoSvc, log)
	api.GET("/todos", todoHandler.List)
	api.POST("/todos", todoHandler.Create)

	fileHandler := handlers.NewFileHandler(files, log)
	r.GET("/uploads/:filename", fileHandler.Serve)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "ClearList API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/api/health",
			"api":     "/api",
		})
	}
}

// healthHandler reports liveness only; it must answer 200 even when the
// store is down.
func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
