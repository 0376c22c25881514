// Package api contains all endpoints available
package api

import (
	"fmt"
	"strings"
	"time"

	"minhyuk/wedding-api/aws"
	"minhyuk/wedding-api/middleware"
	"minhyuk/wedding-api/sheets"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	Router *gin.Engine
	Sheets *sheets.Client
	S3     aws.Storage
	Bucket string
}

func NewRouter() (*API, error) {
	a := &API{
		Sheets: sheets.New(),
	}

	makeLogger()

	router := gin.New()
	a.Router = router

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
	})

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// GET /api/debug		-> Reports which config values are present
		main.GET("/debug", a.Debug)

		// GET /api/layouts		-> Lists the available invitation themes
		main.GET("/layouts", cacheFor(3600), a.Layouts)

		// GET /api/map			-> Map widget config, or the directions fallback
		main.GET("/map", cacheFor(300), a.MapConfig)

		// POST /api/device-id		-> Derives a device ID from browser signals
		main.POST("/device-id", a.DeviceID)
	}

	att := main.Group("/attendance")
	{
		// GET /api/attendance		-> All RSVP rows plus the admin summary
		att.GET("", a.AttendanceFetch)

		// POST /api/attendance		-> Records a new RSVP row
		att.POST("", rateLimiter, a.AttendanceSubmit)

		// POST /api/attendance/check	-> Advisory duplicate check before submitting
		att.POST("/check", rateLimiter, a.AttendanceCheck)
	}

	photos := main.Group("/photos")
	{
		// GET /api/photos		-> Lists uploaded guest photos, newest first
		photos.GET("", a.PhotoList)

		// POST /api/photos		-> Uploads a guest photo or video
		photos.POST("", rateLimiter, a.PhotoUpload)
	}

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}

	a.S3 = s3.C
	a.Bucket = *s3.Bucket

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
