package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/modules/availability"
	"hotelbooking/internal/modules/payment"
	"hotelbooking/internal/modules/wallet"
	"hotelbooking/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires guest endpoints on rg, front-desk operations on
// staff and deposit review on admin.
func (h *Handler) RegisterRoutes(rg, staff, admin *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings", h.ListMine)
	rg.GET("/bookings/:id", h.Get)
	rg.POST("/bookings/:id/deposit/proof", h.SubmitDepositProof)
	rg.POST("/bookings/:id/deposit/wallet", h.PayDepositFromWallet)
	rg.POST("/bookings/:id/cancel", h.Cancel)

	staff.POST("/bookings/:id/check-in", h.CheckIn)
	staff.POST("/bookings/:id/services", h.AddService)
	staff.POST("/bookings/:id/checkout", h.Checkout)

	admin.POST("/bookings/:id/approve", h.Approve)
	admin.POST("/bookings/:id/reject", h.Reject)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	checkIn, err := time.Parse(time.DateOnly, req.CheckIn)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse(time.DateOnly, req.CheckOut)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_out must be YYYY-MM-DD")
		return
	}

	b, err := h.svc.Create(c.Request.Context(), CreateParams{
		UserID:   c.GetInt64("user_id"),
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Adults:   req.Adults,
		Children: req.Children,
	})
	if err != nil {
		writeError(c, err, "Failed to create booking")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListMine(c *gin.Context) {
	bookings, err := h.svc.ListForUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err, "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.svc.GetForUser(c.Request.Context(), id,
		c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		writeError(c, err, "Failed to get booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) SubmitDepositProof(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req DepositProofInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.svc.SubmitDepositProof(c.Request.Context(), id, c.GetInt64("user_id"), req.ProofURL)
	if err != nil {
		writeError(c, err, "Failed to submit deposit proof")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) PayDepositFromWallet(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.svc.PayDepositFromWallet(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err, "Failed to pay deposit")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to approve booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req CancelInput
	_ = c.ShouldBindJSON(&req)

	b, err := h.svc.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeError(c, err, "Failed to reject deposit")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.svc.CheckIn(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to check in")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) AddService(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req AddServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.svc.AddService(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err, "Failed to add service")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Checkout(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req CheckoutInput
	_ = c.ShouldBindJSON(&req)

	b, err := h.svc.Checkout(c.Request.Context(), id, payment.Strategy(req.Strategy))
	if err != nil {
		writeError(c, err, "Failed to check out")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req CancelInput
	_ = c.ShouldBindJSON(&req)

	b, err := h.svc.Cancel(c.Request.Context(), id,
		c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req.Reason)
	if err != nil {
		writeError(c, err, "Failed to cancel booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
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
	case errors.Is(err, ErrValidation), errors.Is(err, ErrCapacity):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, availability.ErrNotAvailable):
		response.Error(c, http.StatusConflict, "NOT_AVAILABLE", err.Error())
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, wallet.ErrInsufficientFunds):
		response.Error(c, http.StatusConflict, "INSUFFICIENT_FUNDS", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
