// Package api serves the storage engine over HTTP: row-level put, get,
// delete and flush plus login, health and stats, under /api/v1.
package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tansudb/tansu/internal/config"
	"github.com/tansudb/tansu/internal/engine"
)

type Server struct {
	engine *engine.Engine
	port   string
	router *gin.Engine
	auth   *AuthManager
}

// NewServer wires an engine and the HTTP surface from configuration.
func NewServer(conf config.Config) *Server {
	eng := engine.NewWithFalsePositiveRate(conf.Store.ExpectedEntries, conf.Store.FilterFalsePositiveRate)
	auth := NewAuthManager(conf.Auth.JWTSecret)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	s := &Server{
		engine: eng,
		port:   conf.Server.Port,
		router: router,
		auth:   auth,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	{
		api.GET("/health", s.healthCheck)
		api.POST("/login", s.login)

		// Protected routes
		protected := api.Group("/")
		protected.Use(s.AuthMiddleware())
		{
			protected.GET("/stats", s.getStats)
			protected.POST("/flush", s.flushTables)

			kv := protected.Group("/kv")
			{
				kv.PUT("/:row", s.putRow)
				kv.GET("/:row", s.getRow)
				kv.DELETE("/:row", s.deleteRow)
			}
		}
	}
}

func (s *Server) Start() error {
	fmt.Printf("Starting tansu-server on port %s\n", s.port)
	return http.ListenAndServe(":"+s.port, s.router)
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "tansu-server",
	})
}

func (s *Server) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{
		Status: "success",
		Data:   s.engine.Stats(),
	})
}
