package handler

import (
	"net/http"
	"strconv"

	"flagphone_backend/internal/phoneinput/service"
	"flagphone_backend/internal/phoneinput/transport"
	"flagphone_backend/platform/httpkit"
	"flagphone_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session id"
)

// Handler handles HTTP requests for phone input sessions and stateless
// number operations.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new phone input handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the session routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/edit", h.Edit)
	rg.POST("/:id/country", h.SetCountry)
	rg.POST("/:id/number", h.SetNumber)
	rg.POST("/:id/countries", h.SetCountries)
	rg.GET("/:id/e164", h.Number)
	rg.GET("/:id/qr", h.QRCode)
}

// RegisterNumberRoutes registers the stateless number routes
func (h *Handler) RegisterNumberRoutes(rg *gin.RouterGroup) {
	rg.POST("/format", h.Format)
	rg.POST("/validate", h.Validate)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateSessionRequest
	if c.Request.ContentLength != 0 && !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, result)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) Edit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req transport.EditRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.Edit(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) SetCountry(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req transport.SetCountryRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.SetCountry(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) SetNumber(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req transport.SetNumberRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.SetNumber(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) SetCountries(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req transport.SelectionRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.svc.SetCountries(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func (h *Handler) Number(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	result, err := h.svc.Number(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// QRCode handles GET /:id/qr?size=256 and answers with a PNG.
func (h *Handler) QRCode(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	size := service.DefaultQRSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "size must be an integer")
			return
		}
		size = parsed
	}

	png, err := h.svc.QRCode(c.Request.Context(), id, size)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) Format(c *gin.Context) {
	var req transport.FormatRequest
	if !h.bind(c, &req) {
		return
	}

	httpkit.OK(c, h.svc.Format(req))
}

func (h *Handler) Validate(c *gin.Context) {
	var req transport.ValidateRequest
	if !h.bind(c, &req) {
		return
	}

	httpkit.OK(c, h.svc.Validate(req))
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return false
	}
	return true
}

func sessionID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return "", false
	}
	return id.String(), true
}
