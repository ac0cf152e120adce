package handlers

import (
	"net/http"

	"wheelie-backend/internal/http/middleware"
	"wheelie-backend/internal/services"
	"wheelie-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/stats
func GetDashboardStats(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	stats, err := services.ReportsService{}.GetDashboardStats(session)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"stats":           stats,
		"revenue_display": utils.FormatRupee(stats.TotalRevenue),
	})
}

// POST /api/admin/seed
func RunSeed(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	svc := services.SeedService{RequestID: middleware.GetRequestID(c)}
	result, err := svc.Run(session)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "seed complete", "inserted": result})
}
