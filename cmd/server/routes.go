package main

import (
	"github.com/gin-gonic/gin"
	"riverdeals.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	dealHandler      *handlers.DealHandler
	catalogHandler   *handlers.CatalogHandler
	authHandler      *handlers.AuthHandler
	affiliateHandler *handlers.AffiliateHandler
	authMiddleware   gin.HandlerFunc
	optionalAuth     gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Deal routes (public read, protected write)
		deals := api.Group("/deals")
		{
			deals.GET("", d.dealHandler.ListDeals)
			deals.GET("/search", d.dealHandler.SearchDeals)
			deals.GET("/popular", d.dealHandler.GetPopularDeals)
			deals.GET("/stats", d.dealHandler.GetStats)
			deals.GET("/:id", d.dealHandler.GetDeal)
			deals.POST("/:id/click", d.dealHandler.RecordClick)
			deals.POST("", d.authMiddleware, d.dealHandler.CreateDeal)
		}

		// Catalog routes (public)
		api.GET("/categories", d.catalogHandler.ListCategories)
		api.GET("/stores", d.catalogHandler.ListStores)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/validate", d.authHandler.Validate)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
			auth.PUT("/me", d.authMiddleware, d.authHandler.UpdateProfile)
			auth.DELETE("/me", d.authMiddleware, d.authHandler.Deactivate)
			auth.POST("/verify-email", d.authMiddleware, d.authHandler.VerifyEmail)
		}

		// Affiliate routes. Tracking endpoints take an optional bearer
		// token so logged-in clicks carry the user.
		affiliate := api.Group("/affiliate")
		{
			affiliate.POST("/track", d.optionalAuth, d.affiliateHandler.TrackClick)
			affiliate.GET("/redirect/:dealId", d.optionalAuth, d.affiliateHandler.Redirect)
			affiliate.POST("/conversion", d.affiliateHandler.RecordConversion)
			affiliate.GET("/stats/clicks/:dealId", d.affiliateHandler.ClickStats)
			affiliate.GET("/stats/conversions", d.affiliateHandler.ConversionStats)
			affiliate.GET("/stats/commissions", d.affiliateHandler.CommissionStats)
			affiliate.GET("/history", d.authMiddleware, d.affiliateHandler.ClickHistory)
		}
	}
}
