package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"riverdeals.backend/internal/domain/entities"
	"riverdeals.backend/internal/interfaces/http/response"
	"riverdeals.backend/internal/usecases"
)

// CatalogHandler handles category and store endpoints
type CatalogHandler struct {
	catalogUsecase *usecases.CatalogUsecase
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogUsecase *usecases.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
	}
}

// ListCategories returns active categories in display order
// GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogUsecase.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if categories == nil {
		categories = []*entities.Category{}
	}
	response.Success(c, http.StatusOK, categories)
}

// ListStores returns active stores ordered by name
// GET /api/stores
func (h *CatalogHandler) ListStores(c *gin.Context) {
	stores, err := h.catalogUsecase.ListStores(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if stores == nil {
		stores = []*entities.Store{}
	}
	response.Success(c, http.StatusOK, stores)
}
