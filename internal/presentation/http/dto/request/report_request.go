package request

// ReportRequest is the request body for generating a tips or category sales
// report. Dates are inclusive YYYY-MM-DD. Synchronous requests return the
// report in the response body; asynchronous requests queue a task and
// deliver the result to the webhook URL.
type ReportRequest struct {
	StartDate     string `json:"startDate" binding:"required"`
	EndDate       string `json:"endDate" binding:"required"`
	LocationIndex int    `json:"locationIndex" binding:"required"`
	WebhookURL    string `json:"webhookUrl,omitempty"`
	Synchronous   bool   `json:"synchronous,omitempty"`
}
