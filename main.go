package main

import (
	"log"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	validation "gopkg.in/go-playground/validator.v9"

	"wallet-engine/app"
	Config "wallet-engine/config"
	"wallet-engine/middlewares"
	"wallet-engine/registry"
	"wallet-engine/services"
	"wallet-engine/tasks"
	"wallet-engine/utility/cache"
	"wallet-engine/utility/logger"
)

func main() {
	config := Config.Data{}
	config.Init("")

	if config.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: config.SentryDSN}); err != nil {
			log.Printf("Sentry initialization failed >> %s", err)
		}
	}

	router := mux.NewRouter()
	validator := validation.New()
	memoryCache := cache.Initialize(time.Duration(config.PriceCacheSeconds)*time.Second, 10*time.Minute)

	application := &app.App{
		Config:    config,
		Router:    router,
		Validator: validator,
		Cache:     memoryCache,
	}
	application.RegisterRoutes()

	networks := registry.New(config)
	priceService := services.NewPriceService(memoryCache, config)
	scheduler := tasks.RegisterScheduledTasks(config, networks, priceService)
	defer scheduler.Stop()

	middleware := middlewares.NewMiddleware(router).
		LogAPIRequests().
		Recover().
		Build()

	serviceAddress := ":" + config.AppPort
	logger.Info("Server started and listening on port %s", config.AppPort)
	log.Fatal(http.ListenAndServe(serviceAddress, middleware))
}
