// Package router wires handlers and middleware to URL paths. Public
// browse endpoints carry no middleware; everything else sits behind
// JWTAuth, and content-creating routes additionally behind the
// verified-account gate.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/handler"
	"github.com/iliyamo/school-community-platform/internal/middleware"
	"github.com/iliyamo/school-community-platform/internal/model"
)

// Handlers collects every handler the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Posts         *handler.PostHandler
	Groups        *handler.GroupHandler
	Files         *handler.FileHandler
	Events        *handler.EventHandler
	Notifications *handler.NotificationHandler
	Reports       *handler.ReportHandler
	Admin         *handler.AdminHandler
	Badges        *handler.BadgeHandler
	Recognitions  *handler.RecognitionHandler
	Stats         *handler.StatsHandler
}

// Register mounts every route. jwtMW authenticates; verifiedMW
// additionally requires a verified, unblocked account and guards all
// content creation.
func Register(e *echo.Echo, h Handlers, jwtMW, verifiedMW echo.MiddlewareFunc) {
	// Unauthenticated surface.
	e.GET("/healthz", handler.Health)
	e.GET("/v1/stats", h.Stats.Public)

	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	// Everything below requires a valid access token.
	v1 := e.Group("/v1", jwtMW)
	v1.POST("/auth/logout", h.Auth.Logout)
	v1.GET("/me", h.Auth.Me)
	v1.PATCH("/users/me", h.Users.UpdateProfile)

	// Reading is open to any authenticated account, verified or not.
	v1.GET("/users", h.Users.List)
	v1.GET("/users/:id", h.Users.Get)
	v1.GET("/users/:id/badges", h.Users.BadgesOf)
	v1.GET("/users/:id/posts", h.Posts.ByUser)
	v1.GET("/users/:id/files", h.Files.ByUser)
	v1.GET("/posts", h.Posts.Feed)
	v1.GET("/posts/:id/comments", h.Posts.ListComments)
	v1.GET("/groups", h.Groups.List)
	v1.GET("/groups/my", h.Groups.Mine)
	v1.GET("/groups/:id", h.Groups.Get)
	v1.GET("/groups/:id/members", h.Groups.Members)
	v1.GET("/groups/:id/posts", h.Groups.ListPosts)
	v1.GET("/groups/:id/messages", h.Groups.ListMessages)
	v1.GET("/files", h.Files.List)
	v1.GET("/files/mine", h.Files.Mine)
	v1.GET("/files/:id/download", h.Files.Download)
	v1.GET("/events", h.Events.List)
	v1.GET("/events/my", h.Events.Hosting)
	v1.GET("/events/booked", h.Events.Booked)
	v1.GET("/notifications", h.Notifications.List)
	v1.POST("/notifications/:id/read", h.Notifications.MarkRead)
	v1.POST("/notifications/read-all", h.Notifications.MarkAllRead)
	v1.GET("/badges", h.Badges.List)
	v1.GET("/recognitions", h.Recognitions.List)

	// Creating and mutating content requires a verified account.
	verified := e.Group("/v1", jwtMW, verifiedMW)
	verified.POST("/posts", h.Posts.Create)
	verified.PUT("/posts/:id", h.Posts.Update)
	verified.DELETE("/posts/:id", h.Posts.Delete)
	verified.POST("/posts/:id/reactions", h.Posts.ToggleLike)
	verified.POST("/posts/:id/comments", h.Posts.AddComment)
	verified.DELETE("/comments/:commentId", h.Posts.DeleteComment)

	verified.POST("/groups", h.Groups.Create)
	verified.DELETE("/groups/:id", h.Groups.Delete)
	verified.POST("/groups/:id/join", h.Groups.Join)
	verified.POST("/groups/:id/leave", h.Groups.Leave)
	verified.POST("/groups/:id/messages", h.Groups.SendMessage)

	verified.POST("/files", h.Files.Upload)
	verified.DELETE("/files/:id", h.Files.Delete)

	verified.POST("/events", h.Events.Create)
	verified.POST("/events/:id/book", h.Events.Book)
	verified.DELETE("/events/:id/book", h.Events.CancelBooking)
	verified.DELETE("/events/:id", h.Events.Delete)

	verified.POST("/reports", h.Reports.Create)
	verified.POST("/recognitions", h.Recognitions.Create)
	verified.DELETE("/recognitions/:id", h.Recognitions.Delete)

	// Chat moderation and badge management is for teachers and admins.
	staff := e.Group("/v1", jwtMW, verifiedMW,
		middleware.RequireRole(model.RoleTeacher, model.RoleAdmin))
	staff.DELETE("/groups/:id/messages/:messageId", h.Groups.DeleteMessage)
	staff.POST("/badges", h.Badges.Create)
	staff.POST("/badges/:id/award", h.Badges.Award)

	// Admin console.
	admin := e.Group("/v1/admin", jwtMW, middleware.RequireRole(model.RoleAdmin))
	admin.GET("/stats", h.Stats.Admin)
	admin.PUT("/users/:id/verify", h.Admin.VerifyUser)
	admin.PUT("/users/:id/block", h.Admin.BlockUser)
	admin.PUT("/users/:id/unblock", h.Admin.UnblockUser)
	admin.PUT("/users/:id/role", h.Admin.ChangeRole)
	admin.PUT("/posts/:id/pin", h.Admin.PinPost)
	admin.PUT("/posts/:id/unpin", h.Admin.UnpinPost)
	admin.GET("/files/pending", h.Admin.PendingFiles)
	admin.PUT("/files/:id/approve", h.Admin.ApproveFile)
	admin.GET("/reports", h.Reports.List)
	admin.POST("/reports/:id/resolve", h.Reports.Resolve)
}
