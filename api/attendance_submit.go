package api

import (
	"net/http"
	"time"

	"minhyuk/wedding-api/attendance"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// The sheet stores submission times in wedding-local (Korean) time. A fixed
// offset avoids depending on the host's tzdata.
var kst = time.FixedZone("KST", 9*60*60)

const timestampLayout = "2006-01-02 15:04:05"

type submitRequest struct {
	Timestamp   string `json:"timestamp"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	WillAttend  *bool  `json:"willAttend" binding:"required"`
	AttendCount *int   `json:"attendCount"`
	UserAgent   string `json:"userAgent"`
	DeviceID    string `json:"deviceId"`
}

// AttendanceSubmit appends one RSVP row to the guest sheet. Append failures
// are hard failures: the guest sees a generic error and can retry, nothing
// partial is recorded.
func (a *API) AttendanceSubmit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	rec := attendance.Record{
		Timestamp:  req.Timestamp,
		Name:       req.Name,
		Phone:      req.Phone,
		WillAttend: *req.WillAttend,
		UserAgent:  req.UserAgent,
		DeviceID:   req.DeviceID,
	}

	if rec.Timestamp == "" {
		rec.Timestamp = time.Now().In(kst).Format(timestampLayout)
	}
	if rec.Name == "" {
		rec.Name = attendance.Anonymous
	}
	if rec.UserAgent == "" {
		rec.UserAgent = c.Request.UserAgent()
	}

	// The UI doesn't collect a party size, so attending means one guest
	if req.AttendCount != nil {
		rec.AttendCount = *req.AttendCount
	} else if rec.WillAttend {
		rec.AttendCount = 1
	}

	if err := a.Sheets.AppendRecord(c.Request.Context(), rec); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"error":     "서버 오류",
			"requestID": requestID,
		})

		zap.L().Error("Failed to append attendance record",
			zap.String("requestID", requestID),
			zap.Error(err),
		)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
