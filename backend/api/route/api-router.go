package route

import (
	"filedrop/backend/api/handler"
	"filedrop/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

func SetApiRouter(router *gin.Engine, files *handler.FileHandler) {
	router.Use(middleware.RequestId())
	router.Use(middleware.CORS())

	router.POST("/upload", files.UploadFile)
	router.GET("/download/:id", files.DownloadFile)
	router.GET("/file/:id", files.GetFileInfo)

	apiRouter := router.Group("/api")
	{
		apiRouter.GET("/status", handler.GetStatus)
	}
}
