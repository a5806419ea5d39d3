// File: propmart/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"propmart/config"
	"propmart/cron"
	"propmart/database"
	"propmart/database/repository"
	"propmart/handlers"
	"propmart/routes"
	"propmart/services/invoice"
	"propmart/services/notify"
	"propmart/services/offer"
	"propmart/services/payment"
	"propmart/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	offerRepo := repository.NewMongoOfferRepo()
	invoiceRepo := repository.NewMongoInvoiceRepo()
	paymentRepo := repository.NewMongoPaymentRepo()
	notificationRepo := repository.NewMongoNotificationRepo()
	buyerRepo := repository.NewMongoBuyerRepo()

	// outbound task queue for notification dispatch.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	// services.
	fanout := &notify.DefaultFanoutService{
		Buyers:        buyerRepo,
		Notifications: notificationRepo,
		Admins:        notify.ConfigAdminResolver{},
		Enqueuer:      asynqClient,
		Logger:        logger,
	}

	issuer := &invoice.DefaultIssuer{
		Invoices: invoiceRepo,
		Buyers:   buyerRepo,
		Logger:   logger,
	}

	offerService := &offer.DefaultLifecycleService{
		Offers: offerRepo,
		Issuer: issuer,
		Fanout: fanout,
		Logger: logger,
	}

	engine := &payment.DefaultReconciliationEngine{
		Payments: paymentRepo,
		Invoices: invoiceRepo,
		Offers:   offerRepo,
		Fanout:   fanout,
		Cache:    utils.GetCacheClient(),
		Logger:   logger,
	}

	ecocashAdapter := &payment.EcoCashAdapter{
		Payments:  paymentRepo,
		Processor: payment.NewEcoCashClient(),
		Fanout:    fanout,
		Logger:    logger,
	}
	bankAdapter := &payment.BankTransferAdapter{
		Payments: paymentRepo,
		Fanout:   fanout,
		Logger:   logger,
	}

	// background dispatch worker.
	cron.InitNotificationWorker(notify.FCMPusher{}, notificationRepo)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Offer:        handlers.NewOfferHandler(offerService, issuer),
		Payment:      handlers.NewPaymentHandler(ecocashAdapter, bankAdapter, engine, paymentRepo),
		Webhook:      handlers.NewWebhookHandler(ecocashAdapter, engine, logger),
		Notification: handlers.NewNotificationHandler(notificationRepo),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
