package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/fynchlabs/toast-insights/internal/application/service"
	"github.com/fynchlabs/toast-insights/internal/presentation/http/dto/response"
)

// TipsHandler handles tips report HTTP requests.
type TipsHandler struct {
	tipsService *service.TipsService
	taskService *service.TaskService
}

// NewTipsHandler creates a new tips handler.
func NewTipsHandler(tipsService *service.TipsService, taskService *service.TaskService) *TipsHandler {
	return &TipsHandler{tipsService: tipsService, taskService: taskService}
}

// Generate queues or runs a tips/sales/tax report for one location and date
// window. Synchronous requests block until the report is built; otherwise
// the report is delivered to the webhook URL when the task completes.
func (h *TipsHandler) Generate(c *gin.Context) {
	req, input, ok := bindReportRequest(c)
	if !ok {
		return
	}

	if req.Synchronous {
		report, err := h.tipsService.GenerateReport(c.Request.Context(), input)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "Tips report generated", report)
		return
	}

	task := h.taskService.Submit("tips", req.WebhookURL, func(ctx context.Context) (any, error) {
		return h.tipsService.GenerateReport(ctx, input)
	})
	response.Accepted(c, "Tips report queued", task)
}
