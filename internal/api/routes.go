package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/scene", sceneHandler)
		api.GET("/qr", qrHandler)
		api.POST("/classify", classifyHandler)
		api.POST("/composite", compositeHandler)
	}
}
