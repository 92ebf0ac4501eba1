package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/dto"
	"github.com/gigflow/gigflow-backend/internal/http/handlers/common"
	"github.com/gigflow/gigflow-backend/internal/service"
)

// GigHandler предоставляет HTTP слой для работы с гигами.
type GigHandler struct {
	gigs *service.GigService
}

// NewGigHandler создаёт хэндлер.
func NewGigHandler(gigs *service.GigService) *GigHandler {
	return &GigHandler{gigs: gigs}
}

// Create обрабатывает POST /api/gigs.
func (h *GigHandler) Create(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req dto.CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	gig, err := h.gigs.Create(c.Request.Context(), userID, service.GigInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusCreated, gig)
}

// List обрабатывает GET /api/gigs?search=...&status=...
func (h *GigHandler) List(c *gin.Context) {
	gigs, err := h.gigs.List(c.Request.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondList(c, gigs, len(gigs))
}

// ListMine обрабатывает GET /api/gigs/my-gigs.
func (h *GigHandler) ListMine(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	gigs, err := h.gigs.ListMine(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondList(c, gigs, len(gigs))
}

// Get обрабатывает GET /api/gigs/:id.
func (h *GigHandler) Get(c *gin.Context) {
	gigID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	gig, err := h.gigs.Get(c.Request.Context(), gigID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusOK, gig)
}

// Update обрабатывает PUT /api/gigs/:id.
func (h *GigHandler) Update(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	gigID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var req dto.UpdateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	gig, err := h.gigs.Update(c.Request.Context(), gigID, userID, service.GigInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusOK, gig)
}

// Delete обрабатывает DELETE /api/gigs/:id.
func (h *GigHandler) Delete(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	gigID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.gigs.Delete(c.Request.Context(), gigID, userID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondMessage(c, http.StatusOK, "гиг удалён")
}
