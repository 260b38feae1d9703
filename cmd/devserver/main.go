package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/doubtsolver/internal/buildinfo"
	"github.com/dmitrijs2005/doubtsolver/internal/logging"
	"github.com/dmitrijs2005/doubtsolver/internal/server"
	"github.com/dmitrijs2005/doubtsolver/internal/server/config"
	"github.com/gin-gonic/gin"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)

	server.NewApp(cfg, logger).Run(context.Background())
}
