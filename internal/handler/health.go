package handler

import (
	"net/http"

	"github.com/Lewin99/BuddyGet/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Health reports whether the database answers.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			_ = c.Error(err)
			util.Error(c, http.StatusServiceUnavailable, util.CodeServerErr, "database unavailable")
			return
		}
		util.Success(c, util.Response{"status": "ok"})
	}
}
