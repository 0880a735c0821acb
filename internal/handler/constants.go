package handler

// Request-level error messages
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request. Please check your inputs."
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidMetric         = "Unknown leaderboard metric"
	ErrMsgInvalidLimit          = "Limit must be a positive number"
)
