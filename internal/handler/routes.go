package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under /api/v1 and the liveness probe at
// /health.
func RegisterRoutes(router gin.IRouter, accounts *AccountHandler, grants *GrantHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/accounts", accounts.CreateAccount)
		v1.GET("/accounts", accounts.ListAccounts)
		v1.GET("/accounts/:accountNumber", accounts.GetAccount)

		v1.POST("/power-of-attorney", grants.GrantAccess)
		v1.GET("/power-of-attorney", grants.ListGrants)
	}
}
