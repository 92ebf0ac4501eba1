package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gigflow/gigflow-backend/internal/dto"
	"github.com/gigflow/gigflow-backend/internal/http/handlers/common"
	"github.com/gigflow/gigflow-backend/internal/service"
)

// BidHandler предоставляет HTTP слой для откликов и найма.
type BidHandler struct {
	bids *service.BidService
}

// NewBidHandler создаёт хэндлер.
func NewBidHandler(bids *service.BidService) *BidHandler {
	return &BidHandler{bids: bids}
}

// Create обрабатывает POST /api/bids.
func (h *BidHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req dto.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	gigID, err := uuid.Parse(req.GigID)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "gig_id должен быть валидным UUID")
		return
	}

	bid, err := h.bids.Submit(c.Request.Context(), userID, service.BidInput{
		GigID:   gigID,
		Message: req.Message,
		Price:   req.Price,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusCreated, bid)
}

// Hire обрабатывает PATCH /api/bids/:bidId/hire.
func (h *BidHandler) Hire(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	bidID, err := common.ParseUUIDParam(c, "bidId")
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	bid, err := h.bids.Hire(c.Request.Context(), bidID, userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusOK, bid)
}

// ListByGig обрабатывает GET /api/bids/:gigId.
func (h *BidHandler) ListByGig(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	gigID, err := common.ParseUUIDParam(c, "gigId")
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	bids, err := h.bids.ListByGig(c.Request.Context(), gigID, userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondList(c, bids, len(bids))
}

// ListMine обрабатывает GET /api/bids/my-bids.
func (h *BidHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	bids, err := h.bids.ListMine(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondList(c, bids, len(bids))
}
