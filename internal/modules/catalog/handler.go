package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires the public catalog on public and rule
// management on admin.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/hotels", h.ListHotels)
	public.GET("/hotels/:id/rooms", h.ListRooms)
	public.GET("/hotels/:id/services", h.ListServices)
	public.GET("/rooms/:id", h.GetRoom)

	admin.GET("/pricing-rules", h.ListPricingRules)
	admin.POST("/pricing-rules", h.CreatePricingRule)
	admin.POST("/pricing-rules/:id/deactivate", h.DeactivatePricingRule)
}

func (h *Handler) ListHotels(c *gin.Context) {
	hotels, err := h.svc.ListHotels(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to list hotels")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotels": hotels})
}

func (h *Handler) ListRooms(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	rooms, err := h.svc.ListRooms(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to list rooms")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) ListServices(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	services, err := h.svc.ListServices(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to list services")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	room, err := h.svc.GetRoom(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to get room")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) ListPricingRules(c *gin.Context) {
	rules, err := h.svc.ListPricingRules(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to list pricing rules")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"pricing_rules": rules})
}

func (h *Handler) CreatePricingRule(c *gin.Context) {
	var req CreatePricingRuleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rule, err := h.svc.CreatePricingRule(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Failed to create pricing rule")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"pricing_rule": rule})
}

func (h *Handler) DeactivatePricingRule(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeactivatePricingRule(c.Request.Context(), id); err != nil {
		writeError(c, err, "Failed to deactivate pricing rule")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ID")
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
