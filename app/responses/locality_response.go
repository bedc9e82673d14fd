package responses

import (
	"github.com/locality-resolver/app/models"
	"github.com/locality-resolver/internal/locality"
)

// BatchResolveItem is one entry of a batch response.
type BatchResolveItem struct {
	Input  string                   `json:"input"`            // Address as submitted
	Result *models.GeocodedLocation `json:"result,omitempty"` // Set on success
	Error  *ErrorResponse           `json:"error,omitempty"`  // Set on failure
}

// BatchResolveResponse is the body of a batch resolution.
type BatchResolveResponse struct {
	Results          []BatchResolveItem `json:"results"`            // In request order
	Total            int                `json:"total"`              // Number of addresses
	Succeeded        int                `json:"succeeded"`          // Resolved addresses
	Failed           int                `json:"failed"`             // Failed addresses
	ProcessingTimeMs int64              `json:"processing_time_ms"` // Wall time (ms)
}

// PolicyResponse describes the active classifier configuration.
type PolicyResponse struct {
	Regions       []string        `json:"regions"`
	AdminSuffixes []string        `json:"admin_suffixes"`
	Policy        locality.Policy `json:"policy"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string      `json:"error"`                // Error kind
	Message   string      `json:"message"`              // Human readable message
	Details   interface{} `json:"details,omitempty"`    // Extra details
	Timestamp string      `json:"timestamp"`            // RFC3339 time
	RequestID string      `json:"request_id,omitempty"` // X-Request-ID of the request
}

// HealthCheckResponse is returned by the health endpoints.
type HealthCheckResponse struct {
	Status    string            `json:"status"`    // healthy / degraded
	Timestamp string            `json:"timestamp"` // RFC3339 time
	Uptime    string            `json:"uptime"`    // Time since start
	Version   string            `json:"version"`   // Service version
	Services  map[string]string `json:"services"`  // Per-dependency status
}
