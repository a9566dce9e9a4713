package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cafeassist/backend/internal/domain"
	"github.com/cafeassist/backend/internal/usecase"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Version is reported by the health endpoint and the version command
const Version = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	assistant     *usecase.AssistantService
	catalog       *usecase.CatalogService
	notifications *usecase.NotificationService
}

// NewHandler creates a new HTTP handler.
// Endpoints whose service is nil answer 501.
func NewHandler(
	assistant *usecase.AssistantService,
	catalog *usecase.CatalogService,
	notifications *usecase.NotificationService,
) *Handler {
	return &Handler{
		assistant:     assistant,
		catalog:       catalog,
		notifications: notifications,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cafeassist-backend",
		"version": Version,
	})
}

// Recommend turns a free-text message into product recommendations
func (h *Handler) Recommend(c *gin.Context) {
	if h.assistant == nil {
		respondError(c, http.StatusNotImplemented, "assistant service not configured")
		return
	}

	var request domain.AssistantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	response, err := h.assistant.Recommend(c.Request.Context(), &request)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"intent":          response.Intent,
		"recommendations": response.Recommendations,
	})
}

// ListProducts returns the full catalog
func (h *Handler) ListProducts(c *gin.Context) {
	if h.assistant == nil {
		respondError(c, http.StatusNotImplemented, "assistant service not configured")
		return
	}

	products, err := h.assistant.Products(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"count":    len(products),
		"products": products,
	})
}

// GetProduct returns a single product
func (h *Handler) GetProduct(c *gin.Context) {
	if h.catalog == nil {
		respondError(c, http.StatusNotImplemented, "catalog service not configured")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"product": product,
	})
}

// CreateProduct adds a product to the catalog
func (h *Handler) CreateProduct(c *gin.Context) {
	if h.catalog == nil {
		respondError(c, http.StatusNotImplemented, "catalog service not configured")
		return
	}

	var input domain.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"product": product,
	})
}

// UpdateProduct replaces a product's fields and labels
func (h *Handler) UpdateProduct(c *gin.Context) {
	if h.catalog == nil {
		respondError(c, http.StatusNotImplemented, "catalog service not configured")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var input domain.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"product": product,
	})
}

// DeleteProduct removes a product
func (h *Handler) DeleteProduct(c *gin.Context) {
	if h.catalog == nil {
		respondError(c, http.StatusNotImplemented, "catalog service not configured")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListLabels returns every registered label
func (h *Handler) ListLabels(c *gin.Context) {
	if h.catalog == nil {
		respondError(c, http.StatusNotImplemented, "catalog service not configured")
		return
	}

	labels, err := h.catalog.Labels(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"labels": labels,
	})
}

// AddLabel registers a label name
func (h *Handler) AddLabel(c *gin.Context) {
	if h.catalog == nil {
		respondError(c, http.StatusNotImplemented, "catalog service not configured")
		return
	}

	var request domain.LabelRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.catalog.AddLabel(c.Request.Context(), request.Name); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success"})
}

// SubmitContact stores a contact form message
func (h *Handler) SubmitContact(c *gin.Context) {
	if h.notifications == nil {
		respondError(c, http.StatusNotImplemented, "notification service not configured")
		return
	}

	var request domain.ContactRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	notification, err := h.notifications.Submit(c.Request.Context(), request)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"id":     notification.ID,
	})
}

// ListNotifications returns open contact messages
func (h *Handler) ListNotifications(c *gin.Context) {
	if h.notifications == nil {
		respondError(c, http.StatusNotImplemented, "notification service not configured")
		return
	}

	notifications, err := h.notifications.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"notifications": notifications,
	})
}

// ResolveNotification deletes a handled contact message
func (h *Handler) ResolveNotification(c *gin.Context) {
	if h.notifications == nil {
		respondError(c, http.StatusNotImplemented, "notification service not configured")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.notifications.Resolve(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter, answering 400 when it is not a number
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id: "+c.Param("id"))
		return 0, false
	}
	return id, true
}

// handleError maps domain errors to HTTP status codes
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrNotificationNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrCatalogUnavailable):
		log.Errorf("[HTTP] catalog unavailable: %v", err)
		respondError(c, http.StatusServiceUnavailable, "product catalog is unavailable")
	default:
		log.Errorf("[HTTP] unexpected error: %v", err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}
