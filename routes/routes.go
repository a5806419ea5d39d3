package routes

import (
	"net/http"
	"time"

	"propmart/handlers"
	"propmart/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers the router wires up.
type HandlerBundle struct {
	Offer        *handlers.OfferHandler
	Payment      *handlers.PaymentHandler
	Webhook      *handlers.WebhookHandler
	Notification *handlers.NotificationHandler
}

// RegisterRoutes wires all endpoints onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterOfferRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}

// RegisterOfferRoutes registers buyer offer endpoints and the admin decision
// endpoint.
func RegisterOfferRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/offers")
	{
		buyer := api.Group("")
		buyer.Use(middleware.JWTAuthBuyerMiddleware())
		buyer.POST("", hb.Offer.SubmitOfferHandler)
		buyer.GET("", hb.Offer.ListMyOffersHandler)
		buyer.GET("/:id", hb.Offer.GetOfferHandler)
		buyer.GET("/:id/invoice", hb.Offer.GetOfferInvoiceHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("/:id/decision", hb.Offer.DecideOfferHandler)
		admin.GET("/:id/payments", hb.Payment.ListOfferPaymentsHandler)
	}
}

// RegisterPaymentRoutes registers the payment channels, the processor
// webhook and the admin verification endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		// The processor callback authenticates by correlation, not by token.
		api.POST("/ecocash/callback", hb.Webhook.EcoCashCallbackHandler)

		buyer := api.Group("")
		buyer.Use(middleware.JWTAuthBuyerMiddleware())
		buyer.POST("/ecocash", hb.Payment.InitiateEcoCashHandler)
		buyer.POST("/bank-transfer", hb.Payment.SubmitBankTransferHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware())
		admin.POST("/:id/verify", hb.Payment.VerifyPaymentHandler)
		admin.POST("/:id/reject", hb.Payment.RejectPaymentHandler)
	}
}

// RegisterNotificationRoutes registers the buyer notification history endpoint.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuthBuyerMiddleware())
	api.GET("", hb.Notification.ListMyNotificationsHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm PropMart"})
	})
}
