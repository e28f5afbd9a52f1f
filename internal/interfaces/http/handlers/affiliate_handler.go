package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
	"riverdeals.backend/internal/interfaces/http/middleware"
	"riverdeals.backend/internal/interfaces/http/response"
	"riverdeals.backend/internal/usecases"
)

// AffiliateHandler handles click tracking and attribution endpoints
type AffiliateHandler struct {
	affiliateUsecase *usecases.AffiliateUsecase
}

// NewAffiliateHandler creates a new affiliate handler
func NewAffiliateHandler(affiliateUsecase *usecases.AffiliateUsecase) *AffiliateHandler {
	return &AffiliateHandler{
		affiliateUsecase: affiliateUsecase,
	}
}

// trackInput builds the tracking metadata from the request. The user ID
// comes from the userId query parameter or, failing that, the bearer
// token when one was presented.
func (h *AffiliateHandler) trackInput(c *gin.Context, dealID uuid.UUID) (*entities.TrackClickInput, error) {
	userID, err := parseUUIDQuery(c, "userId")
	if err != nil {
		return nil, err
	}
	if userID == nil {
		if authenticated, ok := middleware.GetUserID(c); ok {
			userID = &authenticated
		}
	}

	return &entities.TrackClickInput{
		DealID:    dealID,
		UserID:    userID,
		IPAddress: clientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
		Referrer:  c.GetHeader("Referer"),
	}, nil
}

// TrackClick records a click event
// POST /api/affiliate/track?dealId=&userId=
func (h *AffiliateHandler) TrackClick(c *gin.Context) {
	dealID, err := uuid.Parse(c.Query("dealId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid dealId"))
		return
	}

	input, err := h.trackInput(c, dealID)
	if err != nil {
		response.Error(c, err)
		return
	}

	clickID, err := h.affiliateUsecase.TrackClick(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"clickId": clickID})
}

// Redirect resolves a deal's affiliate URL and tracks the visit
// GET /api/affiliate/redirect/:dealId
func (h *AffiliateHandler) Redirect(c *gin.Context) {
	dealID, err := parseUUIDParam(c, "dealId")
	if err != nil {
		response.Error(c, err)
		return
	}

	input, err := h.trackInput(c, dealID)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.affiliateUsecase.ResolveRedirect(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, result.AffiliateURL)
}

// RecordConversion attributes an order to a click
// POST /api/affiliate/conversion?clickId=&orderAmount=
func (h *AffiliateHandler) RecordConversion(c *gin.Context) {
	clickID := c.Query("clickId")
	if clickID == "" {
		response.Error(c, domainerrors.BadRequest("clickId is required"))
		return
	}

	orderAmount, err := strconv.ParseFloat(c.Query("orderAmount"), 64)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid orderAmount"))
		return
	}

	click, err := h.affiliateUsecase.RecordConversion(c.Request.Context(), clickID, orderAmount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, click)
}

// ClickStats counts clicks on a deal inside a window
// GET /api/affiliate/stats/clicks/:dealId?hours=
func (h *AffiliateHandler) ClickStats(c *gin.Context) {
	dealID, err := parseUUIDParam(c, "dealId")
	if err != nil {
		response.Error(c, err)
		return
	}
	hours, err := parseIntQuery(c, "hours", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	count, err := h.affiliateUsecase.TotalClicksForDeal(c.Request.Context(), dealID, hours)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dealId": dealID, "clicks": count})
}

// ConversionStats counts conversions inside a window
// GET /api/affiliate/stats/conversions?days=
func (h *AffiliateHandler) ConversionStats(c *gin.Context) {
	days, err := parseIntQuery(c, "days", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	count, err := h.affiliateUsecase.TotalConversions(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conversions": count})
}

// CommissionStats sums commissions inside a window
// GET /api/affiliate/stats/commissions?days=
func (h *AffiliateHandler) CommissionStats(c *gin.Context) {
	days, err := parseIntQuery(c, "days", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	total, err := h.affiliateUsecase.TotalCommissions(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"totalCommissions": total})
}

// ClickHistory lists the authenticated user's clicks, newest first
// GET /api/affiliate/history
func (h *AffiliateHandler) ClickHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	clicks, err := h.affiliateUsecase.UserClickHistory(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if clicks == nil {
		clicks = []*entities.AffiliateClick{}
	}
	response.Success(c, http.StatusOK, clicks)
}
