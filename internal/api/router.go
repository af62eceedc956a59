package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"

	"salespulse/internal/database"
)

// RouterConfig wires the schema and health service into the HTTP surface.
type RouterConfig struct {
	Schema *graphql.Schema
	DB     database.Service
	Logger *slog.Logger
}

// NewRouter serves the GraphQL endpoint (GraphiQL included) and a health
// probe backed by the database service.
func NewRouter(cfg *RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(cfg.Logger))
	router.Use(cors.Default())

	graphqlHandler := handler.New(&handler.Config{
		Schema:   cfg.Schema,
		Pretty:   true,
		GraphiQL: true,
	})
	router.POST("/graphql", gin.WrapH(graphqlHandler))
	router.GET("/graphql", gin.WrapH(graphqlHandler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, cfg.DB.Health())
	})

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
