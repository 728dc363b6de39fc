package pricing

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/response"
)

type RoomGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type Handler struct {
	resolver *Resolver
	rooms    RoomGetter
}

func NewHandler(resolver *Resolver, rooms RoomGetter) *Handler {
	return &Handler{resolver: resolver, rooms: rooms}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms/:id/quote", h.Quote)
}

// Quote prices a stay: GET /rooms/:id/quote?check_in=2025-06-02&check_out=2025-06-05
func (h *Handler) Quote(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room ID")
		return
	}

	checkIn, err1 := time.Parse("2006-01-02", c.Query("check_in"))
	checkOut, err2 := time.Parse("2006-01-02", c.Query("check_out"))
	if err1 != nil || err2 != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "check_in and check_out must be YYYY-MM-DD dates")
		return
	}

	room, err := h.rooms.GetByID(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load room")
		return
	}

	breakdown, err := h.resolver.PriceBreakdown(c.Request.Context(), room.ID, checkIn, checkOut, room.BasePrice)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to price the stay")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"room_id":   room.ID,
		"check_in":  checkIn.Format("2006-01-02"),
		"check_out": checkOut.Format("2006-01-02"),
		"breakdown": breakdown,
	})
}
