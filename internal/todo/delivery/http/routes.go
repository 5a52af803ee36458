package http

import (
	"github.com/gin-gonic/gin"

	"todo-assistant/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
// All routes require an authenticated session.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	tasks := rg.Group("/tasks", mw.Auth())
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.DetailTask)
		tasks.PATCH("/:id/complete", h.SetComplete)
		tasks.PATCH("/:id/starred", h.SetStarred)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.GET("/:id/subtasks", h.ListSubtasks)
		tasks.POST("/:id/subtasks", h.CreateSubtask)
	}

	lists := rg.Group("/tasklists", mw.Auth())
	{
		lists.GET("", h.ListTaskLists)
		lists.POST("", h.CreateTaskList)
		lists.DELETE("/:id", h.DeleteTaskList)
		lists.PUT("/:id/tasks/:task_id", h.AttachTask)
		lists.DELETE("/:id/tasks/:task_id", h.DetachTask)
	}

	rg.DELETE("/subtasks/:id", mw.Auth(), h.DeleteSubtask)
}
