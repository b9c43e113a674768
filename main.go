package main

import (
	"embed"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"filedrop/backend/api/handler"
	"filedrop/backend/api/route"
	"filedrop/backend/common"
	"filedrop/backend/library/storage"
	"filedrop/backend/model"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
)

//go:embed public
var buildFS embed.FS

//go:embed public/index.html
var indexPage []byte

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	if err := common.LoadConfig(); err != nil {
		common.FatalLog(err)
	}
	common.SetupGinLog()
	common.SysLog("filedrop " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}

	blobs, err := storage.NewLocalStore(common.UploadPath)
	if err != nil {
		common.FatalLog(err)
	}
	files := handler.NewFileHandler(service.NewFileService(model.DB, blobs))

	server := gin.Default()
	route.SetRouter(server, files, buildFS, indexPage)

	setupGracefulShutdown()

	port := strconv.Itoa(*common.Port)
	common.SysLog("server listening on port " + port)
	if err := server.Run(":" + port); err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}

// setupGracefulShutdown closes the metadata store before the process exits.
func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		common.SysLog("shutting down...")
		if err := model.CloseDB(); err != nil {
			common.SysError("error closing database: " + err.Error())
		} else {
			common.SysLog("database connection closed")
		}
		os.Exit(0)
	}()
}
