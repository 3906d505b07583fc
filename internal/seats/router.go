package seats

import (
	"seatwise/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSeatRoutes(rg *gin.RouterGroup, controller Controller) {
	// Public seat map - anyone can view a layout
	events := rg.Group("/events")
	{
		events.GET("/:eventId/seats", controller.GetEventSeats) // GET /api/v1/events/:eventId/seats
	}

	// USER SEAT OPERATIONS

	userSeats := rg.Group("/events/:eventId/seats")
	userSeats.Use(middleware.JWTAuth(), middleware.RequireRoles("USER", "ADMIN"))
	{
		userSeats.POST("/book", controller.BookSeats) // POST /api/v1/events/:eventId/seats/book
	}

	// ADMIN SEAT OPERATIONS

	adminSeats := rg.Group("/admin/events/:eventId/seats")
	adminSeats.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminSeats.POST("/approve", controller.ApproveSeats) // POST /api/v1/admin/events/:eventId/seats/approve
		adminSeats.POST("/reject", controller.RejectSeats)   // POST /api/v1/admin/events/:eventId/seats/reject
		adminSeats.POST("/block", controller.BlockSeats)     // POST /api/v1/admin/events/:eventId/seats/block
		adminSeats.POST("/unblock", controller.UnblockSeats) // POST /api/v1/admin/events/:eventId/seats/unblock
		adminSeats.POST("/reset", controller.ResetSeats)     // POST /api/v1/admin/events/:eventId/seats/reset
	}
}
