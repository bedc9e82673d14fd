package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/locality-resolver/app/requests"
	"github.com/locality-resolver/app/responses"
	"github.com/locality-resolver/app/services"
	"github.com/locality-resolver/helpers/utils"
)

// Version is reported by the health and home endpoints.
const Version = "1.0.0"

// LocalityController handles address-to-city requests.
type LocalityController struct {
	localityService *services.LocalityService
	logger          *zap.Logger
}

// NewLocalityController creates a LocalityController.
func NewLocalityController(localityService *services.LocalityService, logger *zap.Logger) *LocalityController {
	return &LocalityController{
		localityService: localityService,
		logger:          logger,
	}
}

// ResolveAddress resolves one address to {city, address, placeId}.
func (lc *LocalityController) ResolveAddress(c *gin.Context) {
	var req requests.ResolveAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		lc.abortWithError(c, services.KindInvalidInput, "address must be a non-empty string")
		return
	}

	loc, err := lc.localityService.Resolve(c.Request.Context(), req.Address, services.ResolveOptions{APIKey: req.APIKey})
	if err != nil {
		rerr := services.AsResolveError(err)
		lc.abortWithError(c, rerr.Kind, rerr.Message)
		return
	}

	c.JSON(http.StatusOK, loc)
}

// BatchResolve resolves several addresses; each entry succeeds or fails on its own.
func (lc *LocalityController) BatchResolve(c *gin.Context) {
	var req requests.BatchResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		lc.abortWithError(c, services.KindInvalidInput, "addresses must be a non-empty list of strings")
		return
	}

	startTime := time.Now()
	items, err := lc.localityService.ResolveBatch(c.Request.Context(), req.Addresses, services.ResolveOptions{APIKey: req.APIKey})
	if err != nil {
		rerr := services.AsResolveError(err)
		lc.abortWithError(c, rerr.Kind, rerr.Message)
		return
	}

	resp := responses.BatchResolveResponse{
		Results: make([]responses.BatchResolveItem, len(items)),
		Total:   len(items),
	}
	for i, item := range items {
		resp.Results[i] = responses.BatchResolveItem{Input: item.Input, Result: item.Location}
		if item.Err != nil {
			errResp := lc.newErrorResponse(c, item.Err.Kind, item.Err.Message)
			resp.Results[i].Error = &errResp
			resp.Failed++
			continue
		}
		resp.Succeeded++
	}
	resp.ProcessingTimeMs = time.Since(startTime).Milliseconds()

	c.JSON(http.StatusOK, resp)
}

// GetPolicy returns the active exclusion tables and position bounds.
func (lc *LocalityController) GetPolicy(c *gin.Context) {
	classifier := lc.localityService.Classifier()
	c.JSON(http.StatusOK, responses.PolicyResponse{
		Regions:       classifier.Tables().Regions(),
		AdminSuffixes: classifier.Tables().AdminSuffixes(),
		Policy:        classifier.Policy(),
	})
}

// HealthCheck reports liveness and whether a provider key is configured.
func (lc *LocalityController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, lc.health())
}

// ReadinessCheck fails while no provider credential is configured.
func (lc *LocalityController) ReadinessCheck(c *gin.Context) {
	h := lc.health()
	if h.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, h)
		return
	}
	c.JSON(http.StatusOK, h)
}

func (lc *LocalityController) health() responses.HealthCheckResponse {
	status := "healthy"
	credential := "configured"
	if !lc.localityService.HasCredential() {
		status = "degraded"
		credential = "missing"
	}
	return responses.HealthCheckResponse{
		Status:    status,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(lc.localityService.GetStartTime()).String(),
		Version:   Version,
		Services: map[string]string{
			"locality_resolver":   "healthy",
			"provider_credential": credential,
		},
	}
}

func (lc *LocalityController) abortWithError(c *gin.Context, kind services.ErrorKind, message string) {
	status := StatusForKind(kind)
	if status >= http.StatusInternalServerError {
		lc.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("kind", string(kind)),
			zap.String("request_id", c.Writer.Header().Get(utils.RequestIDHeader)))
	}
	c.AbortWithStatusJSON(status, lc.newErrorResponse(c, kind, message))
}

func (lc *LocalityController) newErrorResponse(c *gin.Context, kind services.ErrorKind, message string) responses.ErrorResponse {
	return responses.ErrorResponse{
		Error:     string(kind),
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: c.Writer.Header().Get(utils.RequestIDHeader),
	}
}

// StatusForKind maps an error kind to its HTTP status.
func StatusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindInvalidInput:
		return http.StatusBadRequest
	case services.KindUpstreamNoResults:
		return http.StatusNotFound
	case services.KindNoCityFound:
		return http.StatusUnprocessableEntity
	case services.KindRateLimited:
		return http.StatusTooManyRequests
	case services.KindUpstreamTransportError:
		return http.StatusBadGateway
	case services.KindMissingCredential, services.KindUnauthorizedCredential:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
