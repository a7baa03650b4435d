package handlers

import (
	"net/http"

	"github.com/diewo77/go-videoshop/httpx"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Health always answers ok once the process serves requests.
func Health(c *gin.Context) {
	httpx.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// Healthz also checks the database with a lightweight query.
func Healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.WithContext(c.Request.Context()).Exec("SELECT 1").Error; err != nil {
			httpx.JSON(c, http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		httpx.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
