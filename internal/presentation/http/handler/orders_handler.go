package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/fynchlabs/toast-insights/internal/application/service"
	"github.com/fynchlabs/toast-insights/internal/presentation/http/dto/response"
)

// OrdersHandler handles category sales report HTTP requests.
type OrdersHandler struct {
	ordersService *service.OrdersService
	taskService   *service.TaskService
}

// NewOrdersHandler creates a new orders handler.
func NewOrdersHandler(ordersService *service.OrdersService, taskService *service.TaskService) *OrdersHandler {
	return &OrdersHandler{ordersService: ordersService, taskService: taskService}
}

// Generate queues or runs a per-category sales summary for one location and
// date window.
func (h *OrdersHandler) Generate(c *gin.Context) {
	req, input, ok := bindReportRequest(c)
	if !ok {
		return
	}

	if req.Synchronous {
		report, err := h.ordersService.GenerateCategoryReport(c.Request.Context(), input)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Category sales report generated", report)
		return
	}

	task := h.taskService.Submit("orders", req.WebhookURL, func(ctx context.Context) (any, error) {
		return h.ordersService.GenerateCategoryReport(ctx, input)
	})
	response.Accepted(c, "Category sales report queued", task)
}
