package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fynchlabs/toast-insights/internal/application/service"
	"github.com/fynchlabs/toast-insights/internal/presentation/http/dto/response"
)

// TaskHandler handles task status HTTP requests.
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Get returns the current state of a queued report task.
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.taskService.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Task retrieved", task)
}
