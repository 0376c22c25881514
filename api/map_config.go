package api

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// MapConfig tells the frontend how to render the venue map. When no map
// provider key is configured the page must still work, so the response
// degrades to a static directions panel with outbound links instead of
// failing.
func (a *API) MapConfig(c *gin.Context) {
	clientID := viper.GetString("map.client_id")
	lat := viper.GetString("venue.latitude")
	lng := viper.GetString("venue.longitude")
	address := viper.GetString("venue.address")

	if clientID == "" || lat == "" || lng == "" {
		links := gin.H{
			"naverMap": "https://map.naver.com",
			"kakaoMap": "https://map.kakao.com",
		}
		if address != "" {
			links["naverMap"] = "https://map.naver.com/v5/search/" + url.PathEscape(address)
			links["kakaoMap"] = "https://map.kakao.com/?q=" + url.QueryEscape(address)
		}

		c.JSON(http.StatusOK, gin.H{
			"fallback": true,
			"address":  address,
			"links":    links,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fallback": false,
		"clientId": clientID,
		"venue": gin.H{
			"latitude":  lat,
			"longitude": lng,
			"address":   address,
		},
	})
}
