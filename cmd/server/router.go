package main

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/colabnow/internal/middleware"
)

func APIEndpoints(r *gin.Engine, h *Handlers) {
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/health", h.Health.Health)

	authenticated := []gin.HandlerFunc{
		middleware.AuthMiddleware(h.authService),
		middleware.LastSeen(h.userService),
	}

	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", append(authenticated, h.Auth.Logout)...)
	}

	r.GET("/ws", middleware.WSAuthMiddleware(h.authService), h.WebSocket.HandleWebSocket)

	// API endpoints
	api := r.Group("/api/v1", authenticated...)
	{
		api.GET("/me", h.Users.GetMe)
		api.PATCH("/me", h.Users.UpdateMe)

		api.GET("/users/:username", h.Users.GetProfile)
		api.GET("/users/:username/memberships", h.Users.GetMemberships)
		api.POST("/users/:username/messages", h.Messages.Send)

		api.GET("/messages", h.Messages.Inbox)
		api.GET("/messages/unread", h.Messages.Unread)
		api.GET("/notifications", h.Notifications.Poll)

		listings := api.Group("/listings")
		{
			listings.GET("", h.Listings.List)
			listings.POST("", h.Listings.Create)
			listings.GET("/:id", h.Listings.Get)
			listings.DELETE("/:id", h.Listings.Delete)
			listings.POST("/:id/join", h.Listings.Join)
			listings.POST("/:id/leave", h.Listings.Leave)
			listings.POST("/:id/complete", h.Listings.Complete)
			listings.PUT("/:id/interest", h.Listings.AddInterest)
			listings.DELETE("/:id/interest", h.Listings.RemoveInterest)
		}
	}
}
