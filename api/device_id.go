package api

import (
	"net/http"
	"strconv"
	"time"

	"minhyuk/wedding-api/fingerprint"

	"github.com/gin-gonic/gin"
)

// DeviceID derives the heuristic device identifier from the signal bundle
// the browser collected. Derivation never fails: missing signals degrade to
// sentinels and still produce a stable identifier.
func (a *API) DeviceID(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var signals fingerprint.Signals
	if err := c.ShouldBindJSON(&signals); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	if signals.UserAgent == "" {
		signals.UserAgent = c.Request.UserAgent()
	}

	// Without a per-tab session value the ID would drift between calls
	// within one session, so anchor it to the current minute as a fallback
	if signals.SessionStart == "" {
		signals.SessionStart = strconv.FormatInt(time.Now().Truncate(time.Minute).UnixMilli(), 10)
	}

	c.JSON(http.StatusOK, gin.H{
		"deviceId": fingerprint.Generate(signals),
	})
}
