package api

import (
	"net/http"
	"strings"

	"minhyuk/wedding-api/attendance"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type checkRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	DeviceID string `json:"deviceId"`
}

// AttendanceCheck runs the advisory duplicate check. The check is fail-open:
// a guest must never be blocked from submitting because the sheet was
// unreachable, so every infrastructure error degrades to "not a duplicate".
func (a *API) AttendanceCheck(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	// Fully anonymous submissions skip the check entirely, device ID
	// included. This runs before any record is fetched.
	if strings.TrimSpace(req.Name) == "" && strings.TrimSpace(req.Phone) == "" {
		c.JSON(http.StatusOK, gin.H{
			"isDuplicate": false,
			"message":     "익명 참석으로 등록됩니다.",
		})
		return
	}

	if viper.GetString("google.sheet_id") == "" {
		c.JSON(http.StatusOK, gin.H{"isDuplicate": false})
		return
	}

	records, err := a.Sheets.ReadRecords(c.Request.Context())
	if err != nil {
		zap.L().Warn("Duplicate check failed, allowing submission",
			zap.String("requestID", requestID),
			zap.Error(err),
		)

		c.JSON(http.StatusOK, gin.H{"isDuplicate": false})
		return
	}

	result := attendance.Check(attendance.Candidate{
		Name:     req.Name,
		Phone:    req.Phone,
		DeviceID: req.DeviceID,
	}, records)

	if result.IsDuplicate {
		c.JSON(http.StatusOK, gin.H{
			"isDuplicate":  true,
			"existingData": result.Existing,
			"message":      "이미 등록된 참석자입니다.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isDuplicate": false,
		"message":     "새로운 참석자입니다.",
	})
}
