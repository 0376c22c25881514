package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Debug reports which external credentials are configured without revealing
// any of their contents. Handy when a deploy mysteriously can't reach the
// sheet or the bucket.
func (a *API) Debug(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":              time.Now().UTC().Format(time.RFC3339),
		"hasGoogleSheetId":       viper.GetString("google.sheet_id") != "",
		"hasServiceAccountEmail": viper.GetString("google.service_account_email") != "",
		"hasPrivateKey":          viper.GetString("google.private_key") != "",
		"hasAwsCredentials":      viper.GetString("aws.access_key_id") != "" && viper.GetString("aws.secret_access_key") != "",
		"hasCdnDomain":           viper.GetString("cdn.domain") != "",
		"hasMapClientId":         viper.GetString("map.client_id") != "",
		"googleSheetIdLength":    len(viper.GetString("google.sheet_id")),
	})
}
