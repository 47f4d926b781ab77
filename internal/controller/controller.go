package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"container-tracking-service/internal/dto"
	"container-tracking-service/internal/middleware"
	"container-tracking-service/internal/service"
)

type TrackingController struct {
	Auth     *service.AuthService
	Tracking *service.TrackingService
}

func NewTrackingController(auth *service.AuthService, tracking *service.TrackingService) *TrackingController {
	return &TrackingController{Auth: auth, Tracking: tracking}
}

// GET /heartbeat — no token required
func (ctl *TrackingController) Heartbeat(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HeartbeatResult{IsAlive: true})
}

// POST /login — no token required
func (ctl *TrackingController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ctl.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		status, msg := loginErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, dto.UserAuth{
		User:        result.DisplayName,
		AccessToken: result.Token,
		UserType:    result.UserType,
	})
}

// loginErrorStatus maps business errors onto HTTP statuses. Wrong
// password and disabled account share one generic 401 message so a
// caller cannot probe which check failed.
func loginErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "username and password are required"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrAccountDisabled):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, service.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "database temporarily unavailable, please retry later"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// POST /order_tracking — requires bearer token
func (ctl *TrackingController) OrderTracking(c *gin.Context) {
	var req dto.OrderTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	// Permission denial and unknown container are normal 200 payloads
	// carried inside the response body; only store failures error here.
	resp, err := ctl.Tracking.BuildOrderHistory(c.Request.Context(), user, req.ContainerNumber)
	if err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database temporarily unavailable, please retry later"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
