package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/gangamma-trust/registration-portal/internal/handlers"
	"github.com/gangamma-trust/registration-portal/internal/logger"
	"github.com/gangamma-trust/registration-portal/internal/middleware"
	"github.com/gangamma-trust/registration-portal/internal/web"
)

type RouterConfig struct {
	Log                 *logger.Logger
	SessionSecret       string
	CORSOrigins         []string
	RegistrationHandler *handlers.RegistrationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	router.Use(sessions.Sessions("gangamma_session", store))

	router.SetHTMLTemplate(web.MustTemplates())

	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/", cfg.RegistrationHandler.Show)
	router.POST("/", cfg.RegistrationHandler.Submit)

	return router
}
