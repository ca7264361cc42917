// Package router wires the handlers into a gin engine.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitroom/splitroom/internal/auth"
	"github.com/splitroom/splitroom/internal/handlers"
	"github.com/splitroom/splitroom/internal/middleware"
)

// Handlers bundles the handler set the router mounts.
type Handlers struct {
	Users    *handlers.UserHandler
	Rooms    *handlers.RoomHandler
	Receipts *handlers.ReceiptHandler
	Payments *handlers.PaymentHandler
}

// New builds the gin engine with middleware and all routes mounted.
func New(h Handlers, jwtManager *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/initialize-verification", h.Users.InitializeVerification)
			users.POST("/complete-verification", h.Users.CompleteVerification)
			users.GET("", middleware.RequireAuth(jwtManager), h.Users.ListUsers)
			users.GET("/:id", middleware.RequireAuth(jwtManager), h.Users.GetUser)
			users.PUT("/:id", middleware.RequireAuth(jwtManager), h.Users.UpdateProfile)
		}

		authed := api.Group("", middleware.RequireAuth(jwtManager))
		{
			authed.GET("/me/rooms", h.Rooms.ListMyRooms)

			rooms := authed.Group("/rooms")
			{
				rooms.POST("", h.Rooms.CreateRoom)
				rooms.POST("/join", h.Rooms.JoinRoom)
				rooms.GET("/:code", h.Rooms.GetRoom)
				rooms.GET("/:code/members", h.Rooms.ListMembers)
				rooms.GET("/:code/receipts", h.Rooms.ListRoomReceipts)
				rooms.GET("/:code/balance-sheet", h.Rooms.BalanceSheet)
			}

			receipts := authed.Group("/receipts")
			{
				receipts.POST("", h.Receipts.CreateReceipt)
				receipts.GET("/:id", h.Receipts.GetReceipt)
				receipts.POST("/:id/settle", h.Receipts.Settle)
			}

			authed.PUT("/items/:id/users", h.Receipts.AssignItem)

			authed.POST("/payments/venmo-link", h.Payments.VenmoLink)
		}
	}

	return r
}
