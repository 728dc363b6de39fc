package wallet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/response"
)

type Handler struct {
	ledger   *Ledger
	requests *RequestService
}

func NewHandler(ledger *Ledger, requests *RequestService) *Handler {
	return &Handler{ledger: ledger, requests: requests}
}

// RegisterRoutes wires the guest-facing wallet endpoints; admin
// review endpoints go on the admin group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup) {
	rg.GET("/wallet", h.GetBalance)
	rg.GET("/wallet/transactions", h.ListTransactions)
	rg.POST("/wallet/deposits", h.CreateDeposit)
	rg.POST("/wallet/withdrawals", h.CreateWithdrawal)
	rg.POST("/wallet/withdrawals/:id/confirm", h.ConfirmWithdrawal)

	admin.GET("/wallet/deposits", h.ListDeposits)
	admin.POST("/wallet/deposits/:id/approve", h.ApproveDeposit)
	admin.POST("/wallet/deposits/:id/reject", h.RejectDeposit)
	admin.GET("/wallet/withdrawals", h.ListWithdrawals)
	admin.POST("/wallet/admin-withdrawals", h.CreateAdminWithdrawal)
	admin.POST("/wallet/withdrawals/:id/approve", h.ApproveWithdrawal)
	admin.POST("/wallet/withdrawals/:id/complete", h.CompleteWithdrawal)
	admin.POST("/wallet/withdrawals/:id/reject", h.RejectWithdrawal)
}

func (h *Handler) GetBalance(c *gin.Context) {
	userID := c.GetInt64("user_id")
	wallet, bonus, err := h.ledger.GetBalance(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, "Failed to get balance")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"wallet_balance": wallet,
		"bonus_balance":  bonus,
	})
}

func (h *Handler) ListTransactions(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.ledger.ListTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		writeError(c, err, "Failed to list transactions")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"transactions": txns})
}

func (h *Handler) CreateDeposit(c *gin.Context) {
	userID := c.GetInt64("user_id")
	var req DepositRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	dep, err := h.requests.CreateDepositRequest(c.Request.Context(), userID, req.Amount, req.ProofURL)
	if err != nil {
		writeError(c, err, "Failed to create deposit request")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"deposit_request": dep})
}

func (h *Handler) CreateWithdrawal(c *gin.Context) {
	userID := c.GetInt64("user_id")
	var req WithdrawalRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	wd, err := h.requests.CreateWithdrawalRequest(c.Request.Context(), userID, req.Amount, req.BankAccount, false)
	if err != nil {
		writeError(c, err, "Failed to create withdrawal request")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"withdrawal_request": wd})
}

func (h *Handler) CreateAdminWithdrawal(c *gin.Context) {
	var req AdminWithdrawalInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	wd, err := h.requests.CreateWithdrawalRequest(c.Request.Context(), req.UserID, req.Amount, req.BankAccount, true)
	if err != nil {
		writeError(c, err, "Failed to create withdrawal request")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"withdrawal_request": wd})
}

func (h *Handler) ConfirmWithdrawal(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id, ok := paramID(c)
	if !ok {
		return
	}

	wd, err := h.requests.ConfirmWithdrawal(c.Request.Context(), id, userID)
	if err != nil {
		writeError(c, err, "Failed to confirm withdrawal")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdrawal_request": wd})
}

func (h *Handler) ListDeposits(c *gin.Context) {
	deps, err := h.requests.ListDepositRequests(c.Request.Context(), statusFilter(c))
	if err != nil {
		writeError(c, err, "Failed to list deposit requests")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deposit_requests": deps})
}

func (h *Handler) ListWithdrawals(c *gin.Context) {
	wds, err := h.requests.ListWithdrawalRequests(c.Request.Context(), statusFilter(c))
	if err != nil {
		writeError(c, err, "Failed to list withdrawal requests")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdrawal_requests": wds})
}

func (h *Handler) ApproveDeposit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	dep, err := h.requests.ApproveDeposit(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err, "Failed to approve deposit")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deposit_request": dep})
}

func (h *Handler) RejectDeposit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req RejectInput
	_ = c.ShouldBindJSON(&req)

	dep, err := h.requests.RejectDeposit(c.Request.Context(), id, c.GetInt64("user_id"), req.Note)
	if err != nil {
		writeError(c, err, "Failed to reject deposit")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deposit_request": dep})
}

func (h *Handler) ApproveWithdrawal(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	wd, err := h.requests.ApproveWithdrawal(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err, "Failed to approve withdrawal")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdrawal_request": wd})
}

func (h *Handler) CompleteWithdrawal(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	wd, err := h.requests.CompleteWithdrawal(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err, "Failed to complete withdrawal")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdrawal_request": wd})
}

func (h *Handler) RejectWithdrawal(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req RejectInput
	_ = c.ShouldBindJSON(&req)

	wd, err := h.requests.RejectWithdrawal(c.Request.Context(), id, c.GetInt64("user_id"), req.Note)
	if err != nil {
		writeError(c, err, "Failed to reject withdrawal")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"withdrawal_request": wd})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid ID")
		return 0, false
	}
	return id, true
}

func statusFilter(c *gin.Context) domain.RequestStatus {
	return domain.RequestStatus(c.Query("status"))
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, ErrInsufficientFunds):
		response.Error(c, http.StatusConflict, "INSUFFICIENT_FUNDS", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
