package route

import (
	"embed"

	"filedrop/backend/api/handler"
	"filedrop/backend/api/middleware"
	"filedrop/backend/common"

	"github.com/gin-gonic/gin"
)

func SetRouter(router *gin.Engine, files *handler.FileHandler, buildFS embed.FS, indexPage []byte) {
	router.Use(middleware.GzipDecodeMiddleware())
	if *common.EnableGzip {
		router.Use(middleware.GzipEncodeMiddleware())
	}

	SetApiRouter(router, files)
	setWebRouter(router, buildFS, indexPage)
}
