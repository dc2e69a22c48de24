package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campground_backend/internal/auth/service"
	"campground_backend/internal/auth/transport"
	"campground_backend/platform/httpkit"
	"campground_backend/platform/validator"
)

// Handler exposes register and login over HTTP.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// NewHandler creates a new auth handler.
func NewHandler(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Register handles POST /auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed")
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, resp)
}
