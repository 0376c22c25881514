package api

import (
	"net/http"
	"time"

	"minhyuk/wedding-api/attendance"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// AttendanceFetch returns every RSVP row plus the aggregated counts the
// admin dashboard shows. The dashboard polls this endpoint, so the response
// carries no-store headers and the summary is recomputed every time.
func (a *API) AttendanceFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if viper.GetString("google.sheet_id") == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Google Sheet ID is missing",
			"requestID": requestID,
		})
		return
	}

	records, err := a.Sheets.ReadRecords(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "데이터 조회에 실패했습니다",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read attendance records",
			zap.String("requestID", requestID),
			zap.Error(err),
		)
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"attendance": records,
		"total":      len(records),
		"summary":    attendance.Summarize(records),
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
