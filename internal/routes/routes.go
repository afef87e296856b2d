package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arbaj2004/Smart-Learn/internal/handlers"
)

// RegisterRoutes mounts every HTTP route under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.Admin.RegisterRoutes(api)
		appHandlers.Course.RegisterRoutes(api)
		appHandlers.Assignment.RegisterRoutes(api)
		appHandlers.User.RegisterRoutes(api)
	}
}
