package routes

import (
	"net/http"
	"time"

	"sportify/handlers"
	"sportify/middleware"
	"sportify/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers route registration needs.
type HandlerBundle struct {
	Reservations *handlers.ReservationHandler
	Payments     *handlers.PaymentHandler
	Facilities   *handlers.FacilityHandler
}

// RegisterFacilityRoutes registers the public facility catalog and slot
// availability endpoints. No authentication: guests browse slots too.
func RegisterFacilityRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/facilities")
	{
		api.GET("", hb.Facilities.ListFacilitiesHandler)
		api.GET("/:id", hb.Facilities.GetFacilityHandler)
		api.GET("/:id/slots", hb.Reservations.AvailableSlotsHandler)
	}
}

// RegisterReservationRoutes registers the customer-facing booking endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/reservations")
	{
		// Guest endpoints: no account required. Guests keep their
		// reservation id as their claim ticket.
		api.POST("/guest", hb.Reservations.CreateGuestReservationHandler)
		api.GET("/:id", hb.Reservations.GetReservationHandler)
		api.POST("/:id/cancel", hb.Reservations.RequestCancellationHandler)

		// Authenticated customer endpoints.
		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware())
		authed.POST("", hb.Reservations.CreateReservationHandler)
	}
}

// RegisterPaymentRoutes registers payment initiation, client-side
// verification, and the provider webhook.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("", hb.Payments.InitiatePaymentHandler)
		api.POST("/:reference/verify", hb.Payments.VerifyPaymentHandler)
	}

	// Provider callback lives outside /api: it is server-to-server.
	r.POST("/webhooks/payments", hb.Payments.PaymentWebhookHandler)
}

// RegisterStaffRoutes registers the staff reservation desk: walk-in creation,
// listing, edits and the cancellation review queue.
func RegisterStaffRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/staff/reservations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.Use(middleware.RequireRoles("staff", "admin"))
		api.POST("", hb.Reservations.CreateStaffReservationHandler)
		api.GET("", hb.Reservations.ListReservationsHandler)
		api.PATCH("/:id", hb.Reservations.EditReservationHandler)
		api.POST("/:id/cancel", hb.Reservations.DirectCancelHandler)
		api.POST("/:id/cancel/confirm", hb.Reservations.ConfirmCancellationHandler)
	}
}

// RegisterAdminRoutes registers destructive administrative endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin/reservations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.Use(middleware.RequireRoles("admin"))
		api.DELETE("/:id", hb.Reservations.DeleteReservationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterFacilityRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterStaffRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
