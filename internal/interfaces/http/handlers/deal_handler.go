package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
	"riverdeals.backend/internal/interfaces/http/response"
	"riverdeals.backend/internal/usecases"
)

// DealHandler handles deal catalog endpoints
type DealHandler struct {
	dealUsecase *usecases.DealUsecase
}

// NewDealHandler creates a new deal handler
func NewDealHandler(dealUsecase *usecases.DealUsecase) *DealHandler {
	return &DealHandler{
		dealUsecase: dealUsecase,
	}
}

func (h *DealHandler) listInput(c *gin.Context) (entities.ListDealsInput, error) {
	page, err := parseIntQuery(c, "page", 0)
	if err != nil {
		return entities.ListDealsInput{}, err
	}
	size, err := parseIntQuery(c, "size", 0)
	if err != nil {
		return entities.ListDealsInput{}, err
	}
	categoryID, err := parseUUIDQuery(c, "categoryId")
	if err != nil {
		return entities.ListDealsInput{}, err
	}
	storeID, err := parseUUIDQuery(c, "storeId")
	if err != nil {
		return entities.ListDealsInput{}, err
	}

	return entities.ListDealsInput{
		Keyword:    c.Query("keyword"),
		CategoryID: categoryID,
		StoreID:    storeID,
		SortBy:     entities.ParseDealSort(c.Query("sortBy")),
		Page:       page,
		Size:       size,
	}, nil
}

// ListDeals handles deal listing with filters
// GET /api/deals
func (h *DealHandler) ListDeals(c *gin.Context) {
	input, err := h.listInput(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.dealUsecase.ListDeals(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// SearchDeals handles keyword search
// GET /api/deals/search
func (h *DealHandler) SearchDeals(c *gin.Context) {
	input, err := h.listInput(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.dealUsecase.SearchDeals(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetDeal returns a single active deal
// GET /api/deals/:id
func (h *DealHandler) GetDeal(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	deal, err := h.dealUsecase.GetDealByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, deal)
}

// RecordClick bumps a deal's click counter
// POST /api/deals/:id/click
func (h *DealHandler) RecordClick(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	count, err := h.dealUsecase.RecordClick(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"clickCount": count})
}

// GetPopularDeals returns the most clicked active deals
// GET /api/deals/popular
func (h *DealHandler) GetPopularDeals(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	deals, err := h.dealUsecase.GetPopularDeals(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	if deals == nil {
		deals = []*entities.Deal{}
	}
	response.Success(c, http.StatusOK, deals)
}

// GetStats returns catalog-level counters
// GET /api/deals/stats
func (h *DealHandler) GetStats(c *gin.Context) {
	total, err := h.dealUsecase.TotalActiveDeals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"totalActiveDeals": total})
}

// CreateDeal persists a new deal
// POST /api/deals
func (h *DealHandler) CreateDeal(c *gin.Context) {
	var input entities.CreateDealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	deal, err := h.dealUsecase.CreateDeal(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, deal)
}
