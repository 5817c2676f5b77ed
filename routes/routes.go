package routes

import (
	"net/http"
	"time"

	"powerup/handlers"
	"powerup/middleware"
	"powerup/models"
	"powerup/services/trainer"
	"powerup/services/user"
	"powerup/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Guards are the auth middlewares shared by the route groups.
type Guards struct {
	Auth    gin.HandlerFunc
	Trainer gin.HandlerFunc
	Admin   gin.HandlerFunc
}

func NewGuards(userSvc user.UserService, trainerSvc trainer.TrainerService) Guards {
	return Guards{
		Auth:    middleware.JWTAuthMiddleware(userSvc),
		Trainer: middleware.TrainerMiddleware(trainerSvc),
		Admin:   middleware.RequireRole(models.RoleAdmin),
	}
}

// RegisterPublicRoutes registers the browsing endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/gyms", hb.Public.ListGyms)
		api.GET("/trainers", hb.Public.ListTrainers)
		api.GET("/trainers/:id", hb.Public.GetTrainer)
		api.GET("/trainers/:id/slots", hb.Public.TrainerSlots)
		api.GET("/trainers/:id/booked", hb.Public.TrainerBooked)
		api.GET("/trainers/:id/ratings", hb.Public.TrainerRatings)
	}
}

// RegisterAppointmentRoutes registers the user side of booking.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle, g Guards) {
	api := r.Group("/api/appointments")
	api.Use(g.Auth)
	{
		api.POST("", hb.Booking.Book)
		api.GET("/mine", hb.Booking.MyBookings)
		api.GET("/rejected-today", hb.Booking.RejectedToday)
		api.POST("/:id/rating", hb.Booking.Rate)
	}
}

// RegisterTrainerRoutes registers the trainer's slot registry, offered
// services and inbox of requests.
func RegisterTrainerRoutes(r *gin.Engine, hb *handlers.HandlerBundle, g Guards) {
	api := r.Group("/api/trainer")
	api.Use(g.Auth, g.Trainer)
	{
		api.GET("/slots", hb.Trainer.ListSlots)
		api.POST("/slots", hb.Trainer.CreateSlot)
		api.PUT("/slots/:id", hb.Trainer.EditSlot)
		api.DELETE("/slots/:id", hb.Trainer.DeleteSlot)

		api.GET("/services", hb.Trainer.MyServices)
		api.POST("/services/:serviceId", hb.Trainer.AddService)
		api.DELETE("/services/:serviceId", hb.Trainer.RemoveService)

		api.GET("/appointments", hb.Booking.TrainerAppointments)
		api.POST("/appointments/:id/accept", hb.Booking.Accept)
		api.POST("/appointments/:id/reject", hb.Booking.Reject)
		api.POST("/appointments/:id/cancel", hb.Booking.Cancel)
	}
}

// RegisterNotificationRoutes registers the inbox endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle, g Guards) {
	api := r.Group("/api/notifications")
	api.Use(g.Auth)
	{
		api.GET("", hb.Notifications.List)
		api.GET("/unread-count", hb.Notifications.UnreadCount)
		api.POST("/:id/read", hb.Notifications.MarkRead)
		api.DELETE("/:id", hb.Notifications.Delete)
		api.PUT("/push-token", hb.Notifications.RegisterPushToken)
	}
}

// RegisterAdminRoutes registers catalogue management and the appointment overview.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, g Guards) {
	api := r.Group("/api/admin")
	api.Use(g.Auth, g.Admin)
	{
		api.POST("/gyms", hb.Admin.CreateGym)
		api.GET("/gyms", hb.Admin.ListGyms)
		api.PUT("/gyms/:id", hb.Admin.UpdateGym)
		api.DELETE("/gyms/:id", hb.Admin.DeleteGym)

		api.POST("/services", hb.Admin.CreateService)
		api.GET("/services", hb.Admin.ListServices)
		api.PUT("/services/:id", hb.Admin.UpdateService)
		api.DELETE("/services/:id", hb.Admin.DeleteService)

		api.POST("/trainers", hb.Admin.CreateTrainer)
		api.PUT("/trainers/:id", hb.Admin.UpdateTrainer)
		api.DELETE("/trainers/:id", hb.Admin.DeleteTrainer)

		api.GET("/appointments", hb.Admin.AllAppointments)
		api.POST("/sweep", hb.Admin.RunSweep)
	}
}

// RegisterHealthRoute registers the liveness probe.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
}

// RegisterRoutes sets up global middleware and every route group.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, g Guards, maxRequestsPerMin int) {
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterPublicRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb, g)
	RegisterTrainerRoutes(r, hb, g)
	RegisterNotificationRoutes(r, hb, g)
	RegisterAdminRoutes(r, hb, g)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Message: "Route not found"})
	})
}
