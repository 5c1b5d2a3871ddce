package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fynchlabs/toast-insights/internal/application/service"
	"github.com/fynchlabs/toast-insights/internal/presentation/http/dto/request"
	"github.com/fynchlabs/toast-insights/internal/presentation/http/dto/response"
)

// bindReportRequest binds and validates the common report request body. It
// writes the error response itself and returns false when the request is
// unusable.
func bindReportRequest(c *gin.Context) (*request.ReportRequest, *service.DateRangeInput, bool) {
	var req request.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return nil, nil, false
	}

	input := &service.DateRangeInput{
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		LocationIndex: req.LocationIndex,
	}
	if err := input.Validate(); err != nil {
		response.Error(c, err)
		return nil, nil, false
	}
	if !req.Synchronous && req.WebhookURL == "" {
		response.BadRequest(c, "webhookUrl is required for asynchronous requests")
		return nil, nil, false
	}
	return &req, input, true
}
