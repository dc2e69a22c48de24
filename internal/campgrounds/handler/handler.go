package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campground_backend/internal/campgrounds/service"
	"campground_backend/internal/campgrounds/transport"
	"campground_backend/internal/uploads"
	"campground_backend/platform/httpkit"
	"campground_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid campground ID"

	imageField = "image"
)

// Handler handles HTTP requests for campgrounds.
type Handler struct {
	svc      *service.Service
	val      *validator.Validator
	receiver *uploads.Receiver
}

// New creates a new campgrounds handler.
func New(svc *service.Service, val *validator.Validator, receiver *uploads.Receiver) *Handler {
	return &Handler{svc: svc, val: val, receiver: receiver}
}

// List retrieves all campgrounds, optionally filtered by a search query.
// GET /api/v1/campgrounds?search=...
func (h *Handler) List(c *gin.Context) {
	var req transport.ListCampgroundsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	result, err := h.svc.List(c.Request.Context(), req.Search)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create creates a new campground from a multipart form with an image
// attachment. The attachment is validated before any upstream call.
// POST /api/v1/campgrounds
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateCampgroundRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed+": "+err.Error())
		return
	}

	staged, err := h.receiver.Receive(c, imageField)
	if httpkit.HandleError(c, err) {
		return
	}
	defer staged.Remove()

	author := service.Author{ID: identity.UserID(), Username: identity.Username()}
	result, err := h.svc.Create(c.Request.Context(), author, req, staged)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// NewForm describes the creation form. No business logic.
// GET /api/v1/campgrounds/new
func (h *Handler) NewForm(c *gin.Context) {
	if httpkit.MustGetIdentity(c) == nil {
		return
	}
	httpkit.OK(c, transport.NewFormResponse{
		Fields:            []string{"name", "price", "description", "location", imageField},
		AllowedExtensions: uploads.AllowedExtensions(),
	})
}

// Show retrieves a campground with its comments.
// GET /api/v1/campgrounds/:id
func (h *Handler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// EditForm retrieves a campground for editing. Owner only.
// GET /api/v1/campgrounds/:id/edit
func (h *Handler) EditForm(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	result, err := h.svc.GetForEdit(c.Request.Context(), id, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Update overwrites a campground; a new image attachment is optional.
// PUT /api/v1/campgrounds/:id
func (h *Handler) Update(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	var req transport.UpdateCampgroundRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed+": "+err.Error())
		return
	}

	staged, err := h.receiver.ReceiveOptional(c, imageField)
	if httpkit.HandleError(c, err) {
		return
	}
	defer staged.Remove()

	result, err := h.svc.Update(c.Request.Context(), id, identity.UserID(), req, staged)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a campground and its remote image. Owner only.
// DELETE /api/v1/campgrounds/:id
func (h *Handler) Delete(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID)
		return
	}

	result, err := h.svc.Delete(c.Request.Context(), id, identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
