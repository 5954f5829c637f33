package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/salestrack/customer-registry/internal/config"
	"github.com/salestrack/customer-registry/internal/handlers"
	"github.com/salestrack/customer-registry/internal/repository"
	"github.com/salestrack/customer-registry/internal/services"
	"github.com/salestrack/customer-registry/pkg/filestore"
	xhttp "github.com/salestrack/customer-registry/pkg/http"
	"github.com/salestrack/customer-registry/pkg/logger"
	"github.com/salestrack/customer-registry/pkg/pg"
	"github.com/salestrack/customer-registry/pkg/prom"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Server.MaxRequestBodySize = int(config.Get().MaxUploadBytes) + 1024*1024
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	store, err := filestore.New(config.Get().UploadDir, config.Get().AllowedExtensionList())
	if err != nil {
		logger.Error("failed preparing upload directory", "error", err)
		return
	}

	if config.Get().MetricsListenAddr != "" {
		hostname, _ := os.Hostname()
		if err := prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed registering metrics", "error", err)
			return
		}
		go prom.ListenAndServer(config.Get().MetricsListenAddr, config.Get().MetricsURI)
	}

	customerRepo := repository.NewCustomerRepository(db)
	communicationRepo := repository.NewCommunicationRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// services
	customerService := services.NewCustomerService(customerRepo, communicationRepo, fileRepo)
	fileService := services.NewFileService(fileRepo, customerRepo, store, config.Get().MaxUploadBytes)
	healthService := services.NewHealthService()

	// v1 handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	fileHandler := handlers.NewFileHandler(fileService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterCustomerRoutes(g, customerHandler)
	handlers.RegisterFileRoutes(g, fileHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()
	logger.Info("customer registry up",
		"addr", config.Get().HttpListenAddr, "version", version, "commit", commit, "built", date)

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
