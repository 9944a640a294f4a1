package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "tracknest.dev/tracknest/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/projects", h.CreateProject)
	e.GET("/projects", h.ListProjects)
	e.GET("/projects/:id", h.GetProject)
	e.PATCH("/projects/:id", h.UpdateProject)
	e.POST("/projects/:id/assignments", h.AssignUser)
	e.DELETE("/projects/:id/assignments/:userID", h.UnassignUser)
	e.GET("/projects/:id/members", h.ListMembers)
	e.GET("/projects/:id/tasks", h.ListProjectTasks)

	e.POST("/tasks", h.CreateTask)
	e.GET("/tasks/:id", h.GetTask)
	e.PATCH("/tasks/:id", h.UpdateTask)
	e.PATCH("/tasks/:id/status", h.TransitionTask)
	e.PATCH("/tasks/:id/assignee", h.ReassignTask)
	e.DELETE("/tasks/:id", h.DeleteTask)
	e.POST("/tasks/:id/comments", h.AddComment)
	e.GET("/tasks/:id/comments", h.ListComments)

	e.PATCH("/comments/:id", h.UpdateComment)
	e.DELETE("/comments/:id", h.DeleteComment)

	e.GET("/notifications", h.ListNotifications)
	e.GET("/notifications/unread-count", h.UnreadCount)
	e.PATCH("/notifications/:id/read", h.MarkNotificationRead)
	e.PATCH("/notifications/:id/unread", h.MarkNotificationUnread)
	e.POST("/notifications/mark-all-read", h.MarkAllNotificationsRead)
	e.DELETE("/notifications/read", h.DeleteReadNotifications)
	e.DELETE("/notifications", h.DeleteNotifications)
}
